package entity

// SlotInput is an immutable (start, end, gap) template used to split a time
// block into slots. Rows are shared reference data, looked up by value and
// reused across doctors rather than duplicated.
type SlotInput struct {
	ID         int    `gorm:"primaryKey;autoIncrement" json:"id"`
	StartTime  string `gorm:"type:time;not null;uniqueIndex:idx_slot_input_value" json:"start_time"`
	EndTime    string `gorm:"type:time;not null;uniqueIndex:idx_slot_input_value" json:"end_time"`
	GapMinutes int    `gorm:"not null;uniqueIndex:idx_slot_input_value" json:"gap_minutes"`
}

func (SlotInput) TableName() string {
	return "slot_inputs"
}
