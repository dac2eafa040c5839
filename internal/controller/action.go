package controller

// Reserved button labels. Every other label is a literal token.
const (
	LabelClear      = "AC"
	LabelBackspace  = "⌫"
	LabelEquals     = "="
	LabelToggleSign = "+/-"
	LabelPercent    = "%"
)

// Action is what a button press does to the expression
type Action int

const (
	// ActionLiteral appends the label verbatim (digits, point, operators)
	ActionLiteral Action = iota
	ActionClear
	ActionBackspace
	ActionEquals
	ActionToggleSign
	ActionPercent
)

// String returns the action name used in logs
func (a Action) String() string {
	switch a {
	case ActionLiteral:
		return "literal"
	case ActionClear:
		return "clear"
	case ActionBackspace:
		return "backspace"
	case ActionEquals:
		return "equals"
	case ActionToggleSign:
		return "toggle_sign"
	case ActionPercent:
		return "percent"
	default:
		return "unknown"
	}
}

// Classify maps a button label to its action
func Classify(label string) Action {
	switch label {
	case LabelClear:
		return ActionClear
	case LabelBackspace:
		return ActionBackspace
	case LabelEquals:
		return ActionEquals
	case LabelToggleSign:
		return ActionToggleSign
	case LabelPercent:
		return ActionPercent
	default:
		return ActionLiteral
	}
}
