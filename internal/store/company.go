package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finsight/internal/model"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("记录不存在")

// CreateCompany 新建公司，名称已存在时返回已有记录
func (s *Store) CreateCompany(name, industry string) (*model.Company, error) {
	if existing, err := s.GetCompanyByName(name); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if industry == "" {
		industry = "generic"
	}
	c := &model.Company{
		ID:        uuid.NewString(),
		Name:      name,
		Industry:  industry,
		CreatedAt: time.Now(),
	}
	_, err := s.db.Exec(`
		INSERT INTO companies (id, name, industry, created_at)
		VALUES (?, ?, ?, ?)
	`, c.ID, c.Name, c.Industry, c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert company failed: %w", err)
	}
	return c, nil
}

// GetCompany 按 ID 查询公司
func (s *Store) GetCompany(id string) (*model.Company, error) {
	return s.scanCompany(s.db.QueryRow(`
		SELECT id, name, industry, created_at FROM companies WHERE id = ?
	`, id))
}

// GetCompanyByName 按名称查询公司
func (s *Store) GetCompanyByName(name string) (*model.Company, error) {
	return s.scanCompany(s.db.QueryRow(`
		SELECT id, name, industry, created_at FROM companies WHERE name = ?
	`, name))
}

// ListCompanies 列出全部公司（按创建时间倒序）
func (s *Store) ListCompanies() ([]model.Company, error) {
	rows, err := s.db.Query(`
		SELECT id, name, industry, created_at FROM companies ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query companies failed: %w", err)
	}
	defer rows.Close()

	var out []model.Company
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Industry, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan company failed: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies failed: %w", err)
	}
	return out, nil
}

// UpdateCompanyIndustry 更新公司行业键
func (s *Store) UpdateCompanyIndustry(id, industry string) error {
	res, err := s.db.Exec(`UPDATE companies SET industry = ? WHERE id = ?`, industry, id)
	if err != nil {
		return fmt.Errorf("update company industry failed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCompany 删除公司及其全部期间
func (s *Store) DeleteCompany(id string) error {
	res, err := s.db.Exec(`DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete company failed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) scanCompany(row *sql.Row) (*model.Company, error) {
	var c model.Company
	err := row.Scan(&c.ID, &c.Name, &c.Industry, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan company failed: %w", err)
	}
	return &c, nil
}
