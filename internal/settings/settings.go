// Package settings persists billing preferences and the bill-number counter
// in a JSON file shared with the rest of the shop tooling.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Values mirrors the settings file layout. Unknown keys in the file are
// preserved across a load/save cycle only if they are listed here, so new
// fields must be added alongside a default.
type Values struct {
	NextBillNumber      int64   `json:"next_bill_number"`
	BillPrefix          string  `json:"bill_prefix"`
	BillSuffix          string  `json:"bill_suffix"`
	AutoIncrement       bool    `json:"auto_increment"`
	TaxRate             float64 `json:"tax_rate"`
	DefaultDiscountType string  `json:"default_discount_type"`
	DefaultCustomer     string  `json:"default_customer"`
	ReturnFeeEnabled    bool    `json:"return_fee_enabled"`
	ReturnFeeType       string  `json:"return_fee_type"`
	DefaultReturnFee    float64 `json:"default_return_fee"`
}

// Defaults returns the settings used when the file is absent or partial.
func Defaults() Values {
	return Values{
		NextBillNumber:      1,
		BillPrefix:          "",
		BillSuffix:          "",
		AutoIncrement:       true,
		TaxRate:             0,
		DefaultDiscountType: "Amount",
		DefaultCustomer:     "Walk-in Customer",
		ReturnFeeEnabled:    false,
		ReturnFeeType:       "Flat",
		DefaultReturnFee:    0,
	}
}

// Store guards the settings file. All bill-number operations are serialized
// so concurrent sale saves cannot hand out the same number.
type Store struct {
	mu     sync.Mutex
	path   string
	values Values
}

// Open loads the settings file at path, merging missing keys from Defaults.
// A missing file is not an error; it is created on first save.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: Defaults()}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if s.values.NextBillNumber < 1 {
		s.values.NextBillNumber = 1
	}
	return s, nil
}

// Values returns a copy of the current settings.
func (s *Store) Values() Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values
}

// Update replaces the stored settings and persists them.
func (s *Store) Update(v Values) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = v
	return s.save()
}

// PeekBillNumber formats the next bill number without consuming it.
func (s *Store) PeekBillNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return formatBill(s.values, s.values.NextBillNumber)
}

// ConsumeBillNumber returns the next bill number and, when auto-increment is
// on, advances and persists the counter. The numeric value is returned for
// storage alongside the formatted string.
func (s *Store) ConsumeBillNumber() (string, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.values.NextBillNumber
	bill := formatBill(s.values, n)
	if s.values.AutoIncrement {
		s.values.NextBillNumber = n + 1
		if err := s.save(); err != nil {
			s.values.NextBillNumber = n
			return "", 0, err
		}
	}
	return bill, n, nil
}

// ReleaseBillNumber walks the counter back after a failed save so the
// number is reused instead of leaving a gap.
func (s *Store) ReleaseBillNumber(n int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.values.AutoIncrement || s.values.NextBillNumber != n+1 {
		return nil
	}
	s.values.NextBillNumber = n
	return s.save()
}

func formatBill(v Values, n int64) string {
	return fmt.Sprintf("%s%05d%s", v.BillPrefix, n, v.BillSuffix)
}

// save writes atomically: temp file in the same directory, then rename.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
