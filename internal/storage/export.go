// ABOUTME: Export and import functionality for fitness data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats; imports JSON backups.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/fitness/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for fitness data.
type ExportData struct {
	Version    string                  `json:"version" yaml:"version"`
	ExportedAt time.Time               `json:"exported_at" yaml:"exported_at"`
	Tool       string                  `json:"tool" yaml:"tool"`
	Users      []ExportUser            `json:"users" yaml:"users"`
	Stats      []*models.StatsSnapshot `json:"stats" yaml:"stats"`
}

// ExportUser carries a user including its password hash, so a JSON backup
// can be restored with working logins.
type ExportUser struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	users, err := d.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	stats, err := d.ListStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}

	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "fitness",
		Users:      make([]ExportUser, 0, len(users)),
		Stats:      stats,
	}
	for _, u := range users {
		data.Users = append(data.Users, ExportUser{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
		})
	}
	return data, nil
}

// ImportData imports users and replaces all stats snapshots in one
// transaction. A user whose email already exists aborts the import.
// When the export holds no stats, the existing snapshots are kept.
func (d *DB) ImportData(ctx context.Context, data *ExportData) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, eu := range data.Users {
		u := models.NewUser(eu.Name, eu.Email, eu.PasswordHash)
		if err := insertUser(ctx, tx, u); err != nil {
			return fmt.Errorf("import user: %w", err)
		}
	}

	if len(data.Stats) > 0 {
		if err := replaceStats(ctx, tx, data.Stats); err != nil {
			return fmt.Errorf("import stats: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(ctx context.Context, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(ctx, &data)
}

// ExportYAML exports all data as YAML. Password hashes are left out; use
// JSON for restorable backups.
func (d *DB) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string                  `yaml:"version"`
		ExportedAt string                  `yaml:"exported_at"`
		Tool       string                  `yaml:"tool"`
		Users      []yamlUser              `yaml:"users"`
		Stats      []*models.StatsSnapshot `yaml:"stats"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Users:      make([]yamlUser, 0, len(data.Users)),
		Stats:      data.Stats,
	}

	for _, u := range data.Users {
		yamlData.Users = append(yamlData.Users, yamlUser{Name: u.Name, Email: u.Email})
	}

	return yaml.Marshal(yamlData)
}

type yamlUser struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// ExportMarkdown exports data as Markdown tables.
func (d *DB) ExportMarkdown(ctx context.Context) (string, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := data.ExportedAt

	sb.WriteString(fmt.Sprintf("# Fitness Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	sb.WriteString("## Stats\n\n")
	header := []string{"ID"}
	for _, f := range models.AllFields {
		header = append(header, models.FieldLabels[f])
	}
	sb.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat("------|", len(header)) + "\n")
	for _, s := range data.Stats {
		row := []string{fmt.Sprintf("%d", s.ID)}
		for _, f := range models.AllFields {
			row = append(row, s.Value(f))
		}
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}

	if len(data.Users) > 0 {
		sb.WriteString("\n## Users\n\n")
		sb.WriteString("| Name | Email |\n")
		sb.WriteString("|------|-------|\n")
		for _, u := range data.Users {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", u.Name, u.Email))
		}
	}

	return sb.String(), nil
}
