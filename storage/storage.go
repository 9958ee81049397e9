package storage

import (
	"log/slog"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"

	"debator/models"
)

type DebateStore interface {
	ListDebates() ([]models.Debate, error)
	GetDebateByID(id string) (*models.Debate, error)
	UpsertDebate(debate *models.Debate) (*models.Debate, error)
	RemoveDebate(id string) error
}

type FullRepo interface {
	DebateStore
	Migrate() error
	Close() error
}

type ProviderSQL struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func (p *ProviderSQL) ListDebates() ([]models.Debate, error) {
	resp := []models.Debate{}
	err := p.db.Select(&resp, "SELECT * FROM debates ORDER BY created_at DESC;")
	return resp, err
}

func (p *ProviderSQL) GetDebateByID(id string) (*models.Debate, error) {
	resp := models.Debate{}
	err := p.db.Get(&resp, "SELECT * FROM debates WHERE id=$1;", id)
	return &resp, err
}

func (p *ProviderSQL) UpsertDebate(debate *models.Debate) (*models.Debate, error) {
	query := `
        INSERT OR REPLACE INTO debates
        (id, char1, char2, user_side, ai_side, winner, turns, turn_count, started_at, created_at, updated_at)
        VALUES (:id, :char1, :char2, :user_side, :ai_side, :winner, :turns, :turn_count, :started_at, :created_at, :updated_at)
        RETURNING *;`
	stmt, err := p.db.PrepareNamed(query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()
	var resp models.Debate
	err = stmt.Get(&resp, debate)
	return &resp, err
}

func (p *ProviderSQL) RemoveDebate(id string) error {
	query := "DELETE FROM debates WHERE id = $1;"
	_, err := p.db.Exec(query, id)
	return err
}

func (p *ProviderSQL) Close() error {
	return p.db.Close()
}

func NewProviderSQL(dbPath string, logger *slog.Logger) (FullRepo, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &ProviderSQL{db: db, logger: logger}, nil
}
