package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

const panadolLabel = "PANADOL\nParacetamol 500mg Tablets\nGSK Pharma Ltd"

func TestOCRCmd_Use(t *testing.T) {
	assert.Equal(t, "ocr [file|-]", ocrCmd.Use)
}

func TestOCRCmd_Long(t *testing.T) {
	assert.Contains(t, ocrCmd.Long, "standard input")
}

func TestOCRCmd_ReadsStdin(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, panadolLabel, "ocr", "--confidence", "0.9")

	require.NoError(t, err)
	assert.Equal(t, panadolLabel, ts.resolver.lastOCR.RawText)
	assert.InDelta(t, 0.9, ts.resolver.lastOCR.Confidence, 1e-9)
	assert.Contains(t, out, "Extracted name: PANADOL")
	assert.Contains(t, out, "Medicine likelihood:")
	assert.Contains(t, out, "Brand Name:   Panadol")
}

func TestOCRCmd_DashReadsStdin(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, panadolLabel, "ocr", "-")

	require.NoError(t, err)
	assert.Equal(t, panadolLabel, ts.resolver.lastOCR.RawText)
}

func TestOCRCmd_ReadsFile(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "label.txt")
	require.NoError(t, os.WriteFile(path, []byte(panadolLabel), 0o600))

	out, err := execute(t, "", "ocr", path)

	require.NoError(t, err)
	assert.Equal(t, panadolLabel, ts.resolver.lastOCR.RawText)
	assert.Contains(t, out, "Panadol")
}

func TestOCRCmd_MissingFile(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "", "ocr", filepath.Join(t.TempDir(), "absent.txt"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reading")
}

func TestOCRCmd_ShortTextHasNoName(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "ab", "ocr")

	require.NoError(t, err)
	assert.Contains(t, out, "No medicine name found in the text")
}

func TestOCRCmd_ConfidenceOutOfRange(t *testing.T) {
	tests := []string{"-0.1", "1.5"}

	for _, value := range tests {
		t.Run(value, func(t *testing.T) {
			_, cleanup := setupTestServices()
			defer cleanup()

			_, err := execute(t, panadolLabel, "ocr", "--confidence", value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestOCRCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, panadolLabel, "ocr", "--json")
	require.NoError(t, err)

	var res domain.OCRResolution
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "PANADOL", res.Analysis.MedicineName)
	assert.True(t, res.Analysis.IsMedicine)
	require.NotNil(t, res.Resolution.Match)
	assert.Equal(t, "Panadol", res.Resolution.Match.BrandName)
}

func TestClassifyCmd_Use(t *testing.T) {
	assert.Equal(t, "classify [file|-]", classifyCmd.Use)
}

func TestClassifyCmd_MedicineText(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "Paracetamol 500mg tablet for oral use", "classify")

	require.NoError(t, err)
	assert.Contains(t, out, "Medicine-related: yes")
	assert.Contains(t, out, "dosage     0.25  mg")
}

func TestClassifyCmd_PlainText(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "The weather is lovely this afternoon", "classify")

	require.NoError(t, err)
	assert.Contains(t, out, "Medicine-related: no (confidence 0.00)")
}

func TestClassifyCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "Ibuprofen 200 mg capsule", "classify", "--json")
	require.NoError(t, err)

	var l domain.Likelihood
	require.NoError(t, json.Unmarshal([]byte(out), &l))
	assert.True(t, l.IsMedicine)
	assert.Contains(t, l.PatternTypes(), "dosage")
	assert.Contains(t, l.PatternTypes(), "form")
}

func TestRunClassify_NotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	textService = nil

	err := runClassify(classifyCmd, nil)

	assert.EqualError(t, err, "text service not configured")
}
