package store

// IntentSignal is a single buying-intent event attached to an account.
// Signals are owned by their account record and are read-only here.
type IntentSignal struct {
	Type      string `json:"type"`
	UserTitle string `json:"user_title,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Account is one record in the persisted account collection.
type Account struct {
	AccountID     string         `json:"account_id"`
	CompanyName   string         `json:"company_name"`
	Industry      string         `json:"industry"`
	EmployeeCount int            `json:"employee_count"`
	Revenue       string         `json:"revenue"`
	IntentScore   int            `json:"intent_score"`
	IntentSignals []IntentSignal `json:"intent_signals,omitempty"`
	Processed     bool           `json:"processed"`
	LastActivity  string         `json:"last_activity,omitempty"`
}
