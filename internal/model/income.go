package model

import "time"

// Income is a logged paycheck or other cash inflow. SkimCents is the
// portion routed into vaults by the save rate at logging time.
type Income struct {
	ID          string
	AmountCents int64
	SkimCents   int64
	Date        time.Time
	Note        string
}
