package models

import (
	"net"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Column widths of access_audit_logs. Values are clipped to fit so that a
// long client-supplied header cannot make the insert fail.
const (
	MaxRoleLen      = 50
	MaxSubjectLen   = 255
	MaxResourceLen  = 100
	MaxRequestIDLen = 255
	MaxIPAddressLen = 45
)

// AccessAction represents the outcome class of an access check
type AccessAction string

const (
	AccessActionDenied  AccessAction = "access_denied"
	AccessActionChecked AccessAction = "access_checked"
)

// ResourceType names the kind of id an access check was made against
type ResourceType string

const (
	ResourceTypePermission ResourceType = "permission"
	ResourceTypeMenu       ResourceType = "menu"
	ResourceTypeFeature    ResourceType = "feature"
)

// AccessAuditLog is one entry of the access audit trail
type AccessAuditLog struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	Role         string       `json:"role" db:"role"`       // as presented, may be unknown
	Subject      string       `json:"subject" db:"subject"` // token sub
	Action       AccessAction `json:"action" db:"action"`
	ResourceType ResourceType `json:"resource_type" db:"resource_type"`
	Resource     string       `json:"resource" db:"resource"`
	Allowed      bool         `json:"allowed" db:"allowed"`
	RequestID    string       `json:"request_id" db:"request_id"`
	IPAddress    string       `json:"ip_address" db:"ip_address"`
	UserAgent    string       `json:"user_agent" db:"user_agent"`
	Timestamp    time.Time    `json:"timestamp" db:"timestamp"`
}

// TableName returns the table name for the AccessAuditLog model
func (AccessAuditLog) TableName() string {
	return "access_audit_logs"
}

// NewAccessAuditLog creates an entry for a single check. The action is
// derived from the outcome.
func NewAccessAuditLog(role, subject string, resourceType ResourceType, resource string, allowed bool) *AccessAuditLog {
	action := AccessActionDenied
	if allowed {
		action = AccessActionChecked
	}
	return &AccessAuditLog{
		ID:           uuid.New(),
		Role:         clip(role, MaxRoleLen),
		Subject:      clip(subject, MaxSubjectLen),
		Action:       action,
		ResourceType: resourceType,
		Resource:     clip(resource, MaxResourceLen),
		Allowed:      allowed,
		Timestamp:    time.Now().UTC(),
	}
}

// WithRequest sets request metadata. ipAddress may be in host:port form;
// only the host is kept.
func (a *AccessAuditLog) WithRequest(requestID, ipAddress, userAgent string) *AccessAuditLog {
	a.RequestID = clip(requestID, MaxRequestIDLen)
	a.IPAddress = clip(hostOnly(ipAddress), MaxIPAddressLen)
	a.UserAgent = clip(userAgent, -1)
	return a
}

func hostOnly(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// clip drops invalid UTF-8 and NUL bytes, which Postgres rejects in text
// columns, then cuts s to at most max characters. A negative max only cleans.
func clip(s string, max int) string {
	s = strings.ReplaceAll(strings.ToValidUTF8(s, ""), "\x00", "")
	if max < 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
