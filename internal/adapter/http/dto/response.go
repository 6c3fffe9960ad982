package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradesim/walletd/internal/domain"
	"github.com/tradesim/walletd/internal/usecase"
)

// AccountResponse represents a wallet account in API responses. Raw
// amounts are in cents; Formatted carries the display string clients
// render directly.
type AccountResponse struct {
	UserID      string     `json:"user_id"`
	Balance     int64      `json:"balance"`
	Formatted   string     `json:"formatted"`
	TotalEarned int64      `json:"total_earned"`
	TotalSpent  int64      `json:"total_spent"`
	AllTimeHigh int64      `json:"all_time_high"`
	AllTimeLow  *int64     `json:"all_time_low,omitempty"`
	LastReset   *time.Time `json:"last_reset,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		UserID:      a.UserID,
		Balance:     a.Balance,
		Formatted:   FormatUSD(a.Balance),
		TotalEarned: a.TotalEarned,
		TotalSpent:  a.TotalSpent,
		AllTimeHigh: a.AllTimeHigh,
		AllTimeLow:  a.AllTimeLow,
		LastReset:   a.LastReset,
		UpdatedAt:   a.UpdatedAt,
	}
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"user_id"`
	Kind                  string    `json:"kind"`
	Amount                int64     `json:"amount"`
	FormattedAmount       string    `json:"formatted_amount"`
	BalanceAfter          int64     `json:"balance_after"`
	FormattedBalanceAfter string    `json:"formatted_balance_after"`
	Description           string    `json:"description"`
	ReferenceID           *string   `json:"reference_id,omitempty"`
	AdminID               *string   `json:"admin_id,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:                    e.ID,
		UserID:                e.UserID,
		Kind:                  string(e.Kind),
		Amount:                e.Amount,
		FormattedAmount:       FormatUSD(e.Amount),
		BalanceAfter:          e.BalanceAfter,
		FormattedBalanceAfter: FormatUSD(e.BalanceAfter),
		Description:           e.Description,
		ReferenceID:           e.ReferenceID,
		AdminID:               e.AdminID,
		CreatedAt:             e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Tier      string    `json:"tier"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Tier:      string(u.Tier),
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// UsersFromDomain converts domain users to responses.
func UsersFromDomain(users []*domain.User) []*UserResponse {
	result := make([]*UserResponse, len(users))
	for i, u := range users {
		result[i] = UserFromDomain(u)
	}
	return result
}

// CreateUserResponse bundles the new user with their provisioned wallet.
type CreateUserResponse struct {
	User    *UserResponse    `json:"user"`
	Account *AccountResponse `json:"account"`
}

// LoginResponse carries the token returned on successful login.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// VerifyResponse reports the result of a ledger consistency check.
type VerifyResponse struct {
	UserID           string    `json:"user_id"`
	Balance          int64     `json:"balance"`
	EntrySum         int64     `json:"entry_sum"`
	LastBalanceAfter int64     `json:"last_balance_after"`
	Consistent       bool      `json:"consistent"`
	CheckedAt        time.Time `json:"checked_at"`
}

// VerifyFromResult converts a verification result to a response.
func VerifyFromResult(v *usecase.VerifyResult) *VerifyResponse {
	return &VerifyResponse{
		UserID:           v.UserID,
		Balance:          v.Balance,
		EntrySum:         v.EntrySum,
		LastBalanceAfter: v.LastBalanceAfter,
		Consistent:       v.Consistent,
		CheckedAt:        v.CheckedAt,
	}
}

// AuditLogResponse represents an audit log in API responses.
type AuditLogResponse struct {
	ID           string      `json:"id"`
	AdminID      string      `json:"admin_id"`
	Action       string      `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	BeforeState  domain.JSON `json:"before_state,omitempty"`
	AfterState   domain.JSON `json:"after_state,omitempty"`
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AuditLogFromDomain converts a domain audit log to a response.
func AuditLogFromDomain(l *domain.AuditLog) *AuditLogResponse {
	return &AuditLogResponse{
		ID:           l.ID,
		AdminID:      l.AdminID,
		Action:       string(l.Action),
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		BeforeState:  l.BeforeState,
		AfterState:   l.AfterState,
		Status:       string(l.Status),
		ErrorMessage: l.ErrorMessage,
		CreatedAt:    l.CreatedAt,
	}
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = AuditLogFromDomain(l)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// FormatUSD renders an amount in cents as a dollar display string with
// thousands separators, e.g. 1000000 -> "$10,000.00".
func FormatUSD(cents int64) string {
	d := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)

	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
