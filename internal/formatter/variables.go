package formatter

import (
	"fmt"
	"strconv"

	"github.com/sellerdash/sellertray/internal/domain"
)

// VariableContext contains all data needed for template variable resolution.
type VariableContext struct {
	// Count variables
	UnreadCount int
	ReadCount   int
	TotalCount  int

	// Type-specific count variables
	SuccessCount int
	ErrorCount   int
	WarnCount    int
	InfoCount    int

	// Content variables
	LatestTitle   string
	LatestMessage string

	// State variables
	HasUnread bool
	Connected bool

	// Severity of the most severe unread notification
	HighestSeverity domain.Type

	// Marketplace scope, comma separated
	MarketplaceList string
}

// VariableResolver resolves template variables to their values.
type VariableResolver interface {
	// Resolve returns the string value for a given variable name and context.
	Resolve(varName string, ctx VariableContext) (string, error)
}

// variableResolver implements VariableResolver interface.
type variableResolver struct{}

// NewVariableResolver creates a new variable resolver instance.
func NewVariableResolver() VariableResolver {
	return &variableResolver{}
}

// Resolve returns the string value for a variable from the context.
func (vr *variableResolver) Resolve(varName string, ctx VariableContext) (string, error) {
	switch varName {
	// Count variables
	case "unread-count":
		return strconv.Itoa(ctx.UnreadCount), nil

	case "read-count":
		return strconv.Itoa(ctx.ReadCount), nil

	case "total-count":
		return strconv.Itoa(ctx.TotalCount), nil

	// Type-specific count variables
	case "success-count":
		return strconv.Itoa(ctx.SuccessCount), nil

	case "error-count":
		return strconv.Itoa(ctx.ErrorCount), nil

	case "warn-count":
		return strconv.Itoa(ctx.WarnCount), nil

	case "info-count":
		return strconv.Itoa(ctx.InfoCount), nil

	// Content variables
	case "latest-title":
		return ctx.LatestTitle, nil

	case "latest-message":
		return ctx.LatestMessage, nil

	// Boolean variables (as strings)
	case "has-unread":
		return boolToString(ctx.HasUnread), nil

	case "connected":
		return boolToString(ctx.Connected), nil

	// Severity variable with ordinal mapping
	case "highest-severity":
		return severityToOrdinal(ctx.HighestSeverity), nil

	case "marketplace-list":
		return ctx.MarketplaceList, nil

	default:
		return "", fmt.Errorf("unknown variable: %s", varName)
	}
}

// boolToString converts a boolean to the string "true" or "false".
func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// severityToOrdinal maps a notification type to an ordinal severity number.
// Lower numbers = more severe. ERROR=1, WARN=2, SUCCESS=3, INFO=4.
func severityToOrdinal(t domain.Type) string {
	switch t {
	case domain.TypeError:
		return "1"
	case domain.TypeWarn:
		return "2"
	case domain.TypeSuccess:
		return "3"
	case domain.TypeInfo:
		return "4"
	default:
		return "4"
	}
}
