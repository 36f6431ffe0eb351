package store

import (
	"errors"
	"testing"
	"time"

	"finsight/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateCompanyIdempotent(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateCompany("测试公司", "manufacturing")
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	if first.ID == "" || first.Industry != "manufacturing" {
		t.Fatalf("company = %+v", first)
	}

	// 同名重复创建返回既有记录
	second, err := s.CreateCompany("测试公司", "retail")
	if err != nil {
		t.Fatalf("CreateCompany again: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("duplicate create returned new ID: %s vs %s", second.ID, first.ID)
	}

	// 未指定行业时落默认值
	generic, err := s.CreateCompany("另一家", "")
	if err != nil {
		t.Fatal(err)
	}
	if generic.Industry != "generic" {
		t.Errorf("Industry = %q, want generic", generic.Industry)
	}
}

func TestCompanyLookupAndDelete(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateCompany("甲公司", "generic")
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.GetCompany(created.ID)
	if err != nil || got.Name != "甲公司" {
		t.Fatalf("GetCompany: %v, %+v", err, got)
	}
	byName, err := s.GetCompanyByName("甲公司")
	if err != nil || byName.ID != created.ID {
		t.Fatalf("GetCompanyByName: %v", err)
	}

	if _, err := s.GetCompany("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing company err = %v, want ErrNotFound", err)
	}

	if err := s.UpdateCompanyIndustry(created.ID, "retail"); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetCompany(created.ID)
	if got.Industry != "retail" {
		t.Errorf("Industry = %q after update", got.Industry)
	}

	if err := s.DeleteCompany(created.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteCompany(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func samplePeriod(id, label string) *model.Period {
	data := model.NewFinancialData()
	data.TotalAssets = 100_000
	data.TotalLiabilities = 40_000
	data.TotalEquity = 60_000
	return &model.Period{
		ID:         id,
		Label:      label,
		Type:       model.PeriodMonth,
		Data:       data,
		Metrics:    &model.FinancialMetrics{DebtToAssetRatio: 40},
		SourceFile: label + ".xlsx",
		CreatedAt:  time.Now(),
	}
}

func TestPeriodRoundtrip(t *testing.T) {
	s := newTestStore(t)
	company, err := s.CreateCompany("期间公司", "generic")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.AppendPeriod(company.ID, samplePeriod("p1", "2024年1月")); err != nil {
		t.Fatalf("AppendPeriod: %v", err)
	}
	if err := s.AppendPeriod(company.ID, samplePeriod("p2", "2024年2月")); err != nil {
		t.Fatal(err)
	}

	periods, err := s.ListPeriods(company.ID)
	if err != nil {
		t.Fatalf("ListPeriods: %v", err)
	}
	if len(periods) != 2 {
		t.Fatalf("len(periods) = %d, want 2", len(periods))
	}
	if periods[0].Label != "2024年1月" || periods[1].Label != "2024年2月" {
		t.Errorf("period order: %s, %s", periods[0].Label, periods[1].Label)
	}
	if periods[0].Data == nil || periods[0].Data.TotalAssets != 100_000 {
		t.Errorf("data snapshot lost: %+v", periods[0].Data)
	}
	if periods[0].Metrics == nil || periods[0].Metrics.DebtToAssetRatio != 40 {
		t.Errorf("metrics lost: %+v", periods[0].Metrics)
	}

	got, err := s.GetPeriod("p2")
	if err != nil || got.SourceFile != "2024年2月.xlsx" {
		t.Fatalf("GetPeriod: %v, %+v", err, got)
	}
	if _, err := s.GetPeriod("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing period err = %v", err)
	}
}

func TestAppendPeriodUpsertsSameLabel(t *testing.T) {
	s := newTestStore(t)
	company, _ := s.CreateCompany("覆盖公司", "generic")

	if err := s.AppendPeriod(company.ID, samplePeriod("p1", "2024年3月")); err != nil {
		t.Fatal(err)
	}
	replacement := samplePeriod("p1b", "2024年3月")
	replacement.Data.TotalAssets = 999_999
	if err := s.AppendPeriod(company.ID, replacement); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	periods, err := s.ListPeriods(company.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(periods) != 1 {
		t.Fatalf("len(periods) = %d, want 1 after upsert", len(periods))
	}
	if periods[0].Data.TotalAssets != 999_999 {
		t.Errorf("upsert did not replace snapshot: %v", periods[0].Data.TotalAssets)
	}
}

func TestRemovePeriodAndCascade(t *testing.T) {
	s := newTestStore(t)
	company, _ := s.CreateCompany("级联公司", "generic")
	if err := s.AppendPeriod(company.ID, samplePeriod("p1", "2024年1月")); err != nil {
		t.Fatal(err)
	}

	if err := s.RemovePeriod("p1"); err != nil {
		t.Fatalf("RemovePeriod: %v", err)
	}
	if err := s.RemovePeriod("p1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second remove err = %v", err)
	}

	// 删除公司级联清空期间
	if err := s.AppendPeriod(company.ID, samplePeriod("p2", "2024年2月")); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteCompany(company.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetPeriod("p2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cascade delete left period behind: %v", err)
	}
}

func TestImportLogLifecycle(t *testing.T) {
	s := newTestStore(t)
	company, _ := s.CreateCompany("日志公司", "generic")

	id, err := s.CreateImportLog(company.ID, "2024年3月.xlsx", 2048)
	if err != nil {
		t.Fatalf("CreateImportLog: %v", err)
	}
	if id <= 0 {
		t.Fatalf("log id = %d", id)
	}

	if err := s.FinishImportLog(id, 5, 4, 1, "success", ""); err != nil {
		t.Fatalf("FinishImportLog: %v", err)
	}

	var status string
	var parsed int
	row := s.DB().QueryRow(`SELECT status, parsed_sheets FROM import_logs WHERE id = ?`, id)
	if err := row.Scan(&status, &parsed); err != nil {
		t.Fatal(err)
	}
	if status != "success" || parsed != 4 {
		t.Errorf("log = %s/%d, want success/4", status, parsed)
	}
}
