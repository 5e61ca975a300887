package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/irrigatech/irrigation-monitoring-backend/internal/domain"
)

type Repos struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repos { return &Repos{db: db} }

func (r *Repos) GetAccountByEmail(email string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.Get(&a, `SELECT id, email, password_hash, role, contact_number, field_id, admin_id, created_at FROM accounts WHERE email = $1`, email)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repos) FindAdminByField(fieldID string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.Get(&a, `SELECT id, email, password_hash, role, contact_number, field_id, admin_id, created_at FROM accounts WHERE role = $1 AND field_id = $2 ORDER BY created_at LIMIT 1`, domain.RoleAdmin, fieldID)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repos) InsertAccount(a *domain.Account) error {
	_, err := r.db.Exec(`INSERT INTO accounts(id, email, password_hash, role, contact_number, field_id, admin_id, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.Email, a.PasswordHash, a.Role, a.ContactNumber, a.FieldID, a.AdminID, a.CreatedAt)
	return err
}

func (r *Repos) ListFarmers(adminID string) ([]domain.Account, error) {
	var out []domain.Account
	err := r.db.Select(&out, `SELECT id, email, password_hash, role, contact_number, field_id, admin_id, created_at FROM accounts WHERE role = $1 AND admin_id = $2 ORDER BY created_at`, domain.RoleFarmer, adminID)
	return out, err
}

func (r *Repos) InsertWaterFlow(w *domain.WaterFlowReading) error {
	_, err := r.db.Exec(`INSERT INTO water_flows(field_id, flow_rate, status, timestamp) VALUES ($1,$2,$3,$4)`,
		w.FieldID, w.FlowRate, w.Status, w.Timestamp)
	return err
}

func (r *Repos) LatestWaterFlow(fieldID string) (*domain.WaterFlowReading, error) {
	var w domain.WaterFlowReading
	err := r.db.Get(&w, `SELECT id, field_id, flow_rate, status, timestamp FROM water_flows WHERE field_id = $1 ORDER BY timestamp DESC LIMIT 1`, fieldID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repos) InsertCanalFlow(c *domain.CanalFlowReading) error {
	_, err := r.db.Exec(`INSERT INTO canal_flows(canal_id, flow_rate, admin_id, timestamp) VALUES ($1,$2,$3,$4)`,
		c.CanalID, c.FlowRate, c.AdminID, c.Timestamp)
	return err
}

func (r *Repos) ListCanalFlow(canalID, adminID string) ([]domain.CanalFlowReading, error) {
	var out []domain.CanalFlowReading
	err := r.db.Select(&out, `SELECT id, canal_id, flow_rate, admin_id, timestamp FROM canal_flows WHERE canal_id = $1 AND admin_id = $2 ORDER BY timestamp`, canalID, adminID)
	return out, err
}

func (r *Repos) ListCanals(adminID string) ([]string, error) {
	var out []string
	err := r.db.Select(&out, `SELECT DISTINCT canal_id FROM canal_flows WHERE admin_id = $1 ORDER BY canal_id`, adminID)
	return out, err
}

func (r *Repos) InsertRule(f *domain.FlowRule) error {
	_, err := r.db.Exec(`INSERT INTO flow_rules(canal_id, min_flow_rate, max_flow_rate, admin_id) VALUES ($1,$2,$3,$4)`,
		f.CanalID, f.MinFlowRate, f.MaxFlowRate, f.AdminID)
	return err
}

func (r *Repos) ListRules(adminID string) ([]domain.FlowRule, error) {
	var out []domain.FlowRule
	err := r.db.Select(&out, `SELECT id, canal_id, min_flow_rate, max_flow_rate, admin_id FROM flow_rules WHERE admin_id = $1 ORDER BY id`, adminID)
	return out, err
}

func (r *Repos) DeleteRule(id int64) error {
	_, err := r.db.Exec(`DELETE FROM flow_rules WHERE id = $1`, id)
	return err
}

// FindRule returns the most recently created rule for the canal and admin.
func (r *Repos) FindRule(canalID, adminID string) (*domain.FlowRule, error) {
	var f domain.FlowRule
	err := r.db.Get(&f, `SELECT id, canal_id, min_flow_rate, max_flow_rate, admin_id FROM flow_rules WHERE canal_id = $1 AND admin_id = $2 ORDER BY id DESC LIMIT 1`, canalID, adminID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *Repos) InsertNotification(n *domain.Notification) error {
	_, err := r.db.Exec(`INSERT INTO notifications(canal_id, message, admin_id, timestamp, read) VALUES ($1,$2,$3,$4,$5)`,
		n.CanalID, n.Message, n.AdminID, n.Timestamp, n.Read)
	return err
}

func (r *Repos) ListNotifications(adminID string) ([]domain.Notification, error) {
	var out []domain.Notification
	err := r.db.Select(&out, `SELECT id, canal_id, message, admin_id, timestamp, read FROM notifications WHERE admin_id = $1 ORDER BY timestamp DESC`, adminID)
	return out, err
}
