package relay

// Status is the state a progress event reports.
type Status string

const (
	StatusSending   Status = "sending"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Event is a progress snapshot. Progress is a percentage already mapped into
// the caller-visible 0-100 scale; Total is the scale's upper bound. ID
// correlates events belonging to one operation.
type Event struct {
	ID       string  `json:"id,omitempty"`
	Status   Status  `json:"status"`
	Progress uint64  `json:"progress"`
	Total    uint64  `json:"total"`
	Error    *string `json:"error"`
	TxID     *string `json:"txid"`
}

// clamped enforces progress <= total at the point of emission.
func (e Event) clamped() Event {
	if e.Progress > e.Total {
		e.Progress = e.Total
	}
	return e
}
