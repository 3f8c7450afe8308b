package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales_settings.json")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestOpenMissingFileUsesDefaults(t *testing.T) {
	s, _ := tempStore(t)

	v := s.Values()
	assert.EqualValues(t, 1, v.NextBillNumber)
	assert.True(t, v.AutoIncrement)
	assert.Equal(t, "Amount", v.DefaultDiscountType)
	assert.Equal(t, "Walk-in Customer", v.DefaultCustomer)
}

func TestOpenMergesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales_settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"next_bill_number": 42, "bill_prefix": "TT-"}`), 0o644))

	s, err := Open(path)
	require.NoError(t, err)

	v := s.Values()
	assert.EqualValues(t, 42, v.NextBillNumber)
	assert.Equal(t, "TT-", v.BillPrefix)
	assert.Equal(t, "Walk-in Customer", v.DefaultCustomer, "missing keys fall back to defaults")
}

func TestConsumeBillNumberFormatsAndAdvances(t *testing.T) {
	s, _ := tempStore(t)
	v := s.Values()
	v.BillPrefix = "TT-"
	v.BillSuffix = "/26"
	v.NextBillNumber = 7
	require.NoError(t, s.Update(v))

	bill, numeric, err := s.ConsumeBillNumber()
	require.NoError(t, err)
	assert.Equal(t, "TT-00007/26", bill)
	assert.EqualValues(t, 7, numeric)
	assert.Equal(t, "TT-00008/26", s.PeekBillNumber())
}

func TestConsumeBillNumberWithoutAutoIncrement(t *testing.T) {
	s, _ := tempStore(t)
	v := s.Values()
	v.AutoIncrement = false
	v.NextBillNumber = 3
	require.NoError(t, s.Update(v))

	bill, _, err := s.ConsumeBillNumber()
	require.NoError(t, err)
	assert.Equal(t, "00003", bill)

	bill, _, err = s.ConsumeBillNumber()
	require.NoError(t, err)
	assert.Equal(t, "00003", bill, "counter stays put without auto-increment")
}

func TestReleaseBillNumber(t *testing.T) {
	s, _ := tempStore(t)

	_, numeric, err := s.ConsumeBillNumber()
	require.NoError(t, err)
	require.NoError(t, s.ReleaseBillNumber(numeric))

	bill, _, err := s.ConsumeBillNumber()
	require.NoError(t, err)
	assert.Equal(t, "00001", bill, "released number is reused")
}

func TestSavePersistsAcrossReopen(t *testing.T) {
	s, path := tempStore(t)

	_, _, err := s.ConsumeBillNumber()
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.EqualValues(t, 2, reopened.Values().NextBillNumber)
}
