// Package view renders collection state for the terminal: tables, modal-style
// edit forms, transient feedback and status accents.
package view

import "salesdesk/pkg/domain"

// Accent is a display color for an enumerated status value.
type Accent string

const (
	AccentOrange Accent = "orange"
	AccentBlue   Accent = "blue"
	AccentPurple Accent = "purple"
	AccentGreen  Accent = "green"
	AccentRed    Accent = "red"
	AccentGray   Accent = "gray"
)

// ansi maps accents to terminal escape sequences.
var ansi = map[Accent]string{
	AccentOrange: "\x1b[33m",
	AccentBlue:   "\x1b[34m",
	AccentPurple: "\x1b[35m",
	AccentGreen:  "\x1b[32m",
	AccentRed:    "\x1b[31m",
	AccentGray:   "\x1b[90m",
}

const ansiReset = "\x1b[0m"

// Paint wraps s in the accent's terminal color.
func (a Accent) Paint(s string) string {
	code, ok := ansi[a]
	if !ok {
		code = ansi[AccentGray]
	}
	return code + s + ansiReset
}

// OrderStatusAccent maps fulfillment states to display accents. Unknown
// values fall back to neutral gray.
func OrderStatusAccent(s domain.OrderStatus) Accent {
	switch s {
	case domain.OrderPending:
		return AccentOrange
	case domain.OrderProcessing:
		return AccentBlue
	case domain.OrderShipped:
		return AccentPurple
	case domain.OrderDelivered:
		return AccentGreen
	case domain.OrderCancelled:
		return AccentRed
	default:
		return AccentGray
	}
}

// PaymentStatusAccent maps payment states to display accents.
func PaymentStatusAccent(s domain.PaymentStatus) Accent {
	switch s {
	case domain.PaymentPending:
		return AccentOrange
	case domain.PaymentPaid:
		return AccentGreen
	case domain.PaymentFailed:
		return AccentRed
	case domain.PaymentRefunded:
		return AccentBlue
	default:
		return AccentGray
	}
}

// ProductStatusAccent maps catalog states to display accents.
func ProductStatusAccent(s domain.ProductStatus) Accent {
	switch s {
	case domain.ProductActive:
		return AccentGreen
	case domain.ProductInactive:
		return AccentOrange
	case domain.ProductDiscontinued:
		return AccentRed
	default:
		return AccentGray
	}
}

// NotificationAccent maps inbox severities to display accents.
func NotificationAccent(t domain.NotificationType) Accent {
	switch t {
	case domain.NotificationInfo:
		return AccentBlue
	case domain.NotificationSuccess:
		return AccentGreen
	case domain.NotificationWarning:
		return AccentOrange
	case domain.NotificationError:
		return AccentRed
	default:
		return AccentGray
	}
}
