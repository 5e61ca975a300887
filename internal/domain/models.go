package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleFarmer = "farmer"
)

// Account is a registered user. Farmers carry the id of the admin managing
// their field; admins reference themselves.
type Account struct {
	ID            string    `db:"id" json:"id"`
	Email         string    `db:"email" json:"email"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	Role          string    `db:"role" json:"role"`
	ContactNumber string    `db:"contact_number" json:"contactNumber"`
	FieldID       string    `db:"field_id" json:"fieldId"`
	AdminID       string    `db:"admin_id" json:"adminId"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

type WaterFlowReading struct {
	ID        int64     `db:"id" json:"id"`
	FieldID   string    `db:"field_id" json:"fieldId"`
	FlowRate  float64   `db:"flow_rate" json:"flowRate"`
	Status    string    `db:"status" json:"status"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

type CanalFlowReading struct {
	ID        int64     `db:"id" json:"id"`
	CanalID   string    `db:"canal_id" json:"canalId"`
	FlowRate  float64   `db:"flow_rate" json:"flowRate"`
	AdminID   string    `db:"admin_id" json:"adminId"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

// FlowRule is a per-canal, per-admin acceptable flow range. Duplicates per
// canal are allowed; the evaluator takes the most recently created match.
type FlowRule struct {
	ID          int64   `db:"id" json:"id"`
	CanalID     string  `db:"canal_id" json:"canalId"`
	MinFlowRate float64 `db:"min_flow_rate" json:"minFlowRate"`
	MaxFlowRate float64 `db:"max_flow_rate" json:"maxFlowRate"`
	AdminID     string  `db:"admin_id" json:"adminId"`
}

type Notification struct {
	ID        int64     `db:"id" json:"id"`
	CanalID   string    `db:"canal_id" json:"canalId"`
	Message   string    `db:"message" json:"message"`
	AdminID   string    `db:"admin_id" json:"adminId"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
	Read      bool      `db:"read" json:"read"`
}
