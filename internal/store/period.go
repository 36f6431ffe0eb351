package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"finsight/internal/model"
)

// AppendPeriod 追加一个期间快照，同公司同标签覆盖旧记录
func (s *Store) AppendPeriod(companyID string, p *model.Period) error {
	dataJSON, err := json.Marshal(p.Data)
	if err != nil {
		return fmt.Errorf("marshal period data failed: %w", err)
	}
	metricsJSON, err := json.Marshal(p.Metrics)
	if err != nil {
		return fmt.Errorf("marshal period metrics failed: %w", err)
	}
	dupontJSON, err := json.Marshal(p.Dupont)
	if err != nil {
		return fmt.Errorf("marshal dupont failed: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO periods (id, company_id, label, period_type, data_json, metrics_json, dupont_json, source_file, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(company_id, label) DO UPDATE SET
			period_type = excluded.period_type,
			data_json = excluded.data_json,
			metrics_json = excluded.metrics_json,
			dupont_json = excluded.dupont_json,
			source_file = excluded.source_file,
			created_at = excluded.created_at
	`, p.ID, companyID, p.Label, string(p.Type), string(dataJSON), string(metricsJSON), string(dupontJSON), p.SourceFile, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert period failed: %w", err)
	}
	return nil
}

// ListPeriods 按创建顺序列出公司的全部期间
func (s *Store) ListPeriods(companyID string) ([]model.Period, error) {
	rows, err := s.db.Query(`
		SELECT id, label, period_type, data_json, metrics_json, dupont_json, source_file, created_at
		FROM periods WHERE company_id = ? ORDER BY created_at ASC, label ASC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("query periods failed: %w", err)
	}
	defer rows.Close()

	var out []model.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate periods failed: %w", err)
	}
	return out, nil
}

// GetPeriod 按 ID 查询期间
func (s *Store) GetPeriod(periodID string) (*model.Period, error) {
	rows, err := s.db.Query(`
		SELECT id, label, period_type, data_json, metrics_json, dupont_json, source_file, created_at
		FROM periods WHERE id = ?
	`, periodID)
	if err != nil {
		return nil, fmt.Errorf("query period failed: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query period failed: %w", err)
		}
		return nil, ErrNotFound
	}
	return scanPeriod(rows)
}

// RemovePeriod 删除期间
func (s *Store) RemovePeriod(periodID string) error {
	res, err := s.db.Exec(`DELETE FROM periods WHERE id = ?`, periodID)
	if err != nil {
		return fmt.Errorf("delete period failed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPeriod(rows *sql.Rows) (*model.Period, error) {
	var (
		p           model.Period
		periodType  string
		dataJSON    string
		metricsJSON sql.NullString
		dupontJSON  sql.NullString
		sourceFile  sql.NullString
	)
	if err := rows.Scan(&p.ID, &p.Label, &periodType, &dataJSON, &metricsJSON, &dupontJSON, &sourceFile, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan period failed: %w", err)
	}
	p.Type = model.PeriodType(periodType)
	p.SourceFile = sourceFile.String

	if err := json.Unmarshal([]byte(dataJSON), &p.Data); err != nil {
		return nil, fmt.Errorf("unmarshal period data failed: %w", err)
	}
	if metricsJSON.Valid && metricsJSON.String != "null" {
		if err := json.Unmarshal([]byte(metricsJSON.String), &p.Metrics); err != nil {
			return nil, fmt.Errorf("unmarshal period metrics failed: %w", err)
		}
	}
	if dupontJSON.Valid && dupontJSON.String != "null" {
		if err := json.Unmarshal([]byte(dupontJSON.String), &p.Dupont); err != nil {
			return nil, fmt.Errorf("unmarshal dupont failed: %w", err)
		}
	}
	return &p, nil
}

// 编译期确认 Store 满足导入协调器的持久化接口
var _ interface {
	AppendPeriod(companyID string, p *model.Period) error
	ListPeriods(companyID string) ([]model.Period, error)
} = (*Store)(nil)
