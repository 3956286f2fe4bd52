package commands_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbuddy-dev/finbuddy/internal/report"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "finbuddy-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "finbuddy")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/finbuddy")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runFinbuddy(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// initWorkspace runs init in a fresh temp dir and returns it.
func initWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runFinbuddy(t, dir, "init")
	require.NoError(t, err)
	return dir
}

const sampleStatement = `Capital One Statement Page 1 of 2
JANE DOE #1234: Transactions
Trans Date Post Date Description Amount
Jan 3 Jan 5 WALMART STORE 100 $45.67
Jan 6 Jan 8 Moble Payment - ABCD $4.50
` + "\f" + `Capital One Statement Page 2 of 2
JANE DOE #1234: Total Transactions $50.17
`

func writeStatement(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "statement.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := initWorkspace(t)

	for _, d := range []string{"data", "private"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir())
	}

	for _, f := range []string{
		"finbuddy.yaml",
		filepath.Join("data", "training-categories.json"),
		filepath.Join("data", "overrides.yaml"),
		".gitignore",
	} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "file %s should exist", f)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "private/")
}

func TestInit_KeepsExistingCorpus(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	corpusPath := filepath.Join(dir, "data", "training-categories.json")
	require.NoError(t, os.WriteFile(corpusPath, []byte(`{"MY SHOP": "shopping"}`), 0o644))

	_, err := runFinbuddy(t, dir, "init")
	require.NoError(t, err)

	data, err := os.ReadFile(corpusPath)
	require.NoError(t, err)
	assert.Equal(t, `{"MY SHOP": "shopping"}`, string(data))
}

func TestCategories(t *testing.T) {
	out, err := runFinbuddy(t, t.TempDir(), "categories")
	require.NoError(t, err)

	lines := strings.Fields(strings.TrimSpace(out))
	assert.Len(t, lines, 17)
	assert.Equal(t, "bills", lines[0])
	assert.Contains(t, lines, "personal_care")
	assert.Contains(t, lines, "unknown")
}

func TestClassify_Override(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runFinbuddy(t, dir, "classify", "NETFLIX.COM MEMBERSHIP")
	require.NoError(t, err)
	assert.Contains(t, out, "entertainment")
	assert.Contains(t, out, "1.00")
}

func TestClassify_TrainedModel(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runFinbuddy(t, dir, "classify", "STARBUCKS 1234 DOWNTOWN")
	require.NoError(t, err)
	assert.Contains(t, out, "food")
}

func TestTrain(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runFinbuddy(t, dir, "train")
	require.NoError(t, err)
	assert.Contains(t, out, "Model trained")

	_, err = os.Stat(filepath.Join(dir, "data", "vectorizer.gob"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "data", "model.gob"))
	assert.NoError(t, err)
}

func TestTrain_MissingCorpus(t *testing.T) {
	dir := t.TempDir()
	out, err := runFinbuddy(t, dir, "train")
	require.Error(t, err)
	assert.Contains(t, out, "training data error")
}

func TestAnalyze_EndToEnd(t *testing.T) {
	dir := initWorkspace(t)
	stmt := writeStatement(t, dir, sampleStatement)
	reportPath := filepath.Join(dir, "report.json")
	csvPath := filepath.Join(dir, "transactions.csv")

	out, err := runFinbuddy(t, dir, "analyze", stmt, "--report", reportPath, "--csv", csvPath)
	require.NoError(t, err, out)
	assert.Contains(t, out, "JANE DOE #1234: 2 transactions, $50.17 (verified)")
	assert.Contains(t, out, "Total expenses: $50.17")

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal(data, &rep))
	require.Len(t, rep.Holders, 1)
	assert.Equal(t, "JANE DOE", rep.Holders[0].Holder)
	assert.True(t, rep.Holders[0].Verified)
	assert.Equal(t, "$50.17", rep.Holders[0].TotalExpenses)
	// WALMART hits the override table; the mobile payment has no
	// trained tokens and falls back.
	assert.Equal(t, "shopping", string(rep.Holders[0].Transactions[0].Category))
	assert.Equal(t, "other", string(rep.Holders[0].Transactions[1].Category))

	csvData, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	csvLines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	require.Len(t, csvLines, 3)
	assert.Equal(t, report.Header, csvLines[0])

	descData, err := os.ReadFile(filepath.Join(dir, "private", "descriptions-data.json"))
	require.NoError(t, err)
	assert.Contains(t, string(descData), "WALMART STORE 100")
	assert.Contains(t, string(descData), "unknown")
}

func TestAnalyze_ReconciliationMismatch(t *testing.T) {
	dir := initWorkspace(t)
	stmt := writeStatement(t, dir, strings.Replace(sampleStatement, "$50.17", "$60.00", 1))
	reportPath := filepath.Join(dir, "report.json")

	out, err := runFinbuddy(t, dir, "analyze", stmt, "--report", reportPath)
	require.Error(t, err)
	assert.Contains(t, out, "reconciliation failed")

	_, statErr := os.Stat(reportPath)
	assert.True(t, os.IsNotExist(statErr), "no report on a failed run")
}

func TestAnalyze_LenientKeepsGoing(t *testing.T) {
	dir := initWorkspace(t)
	stmt := writeStatement(t, dir, strings.Replace(sampleStatement, "$50.17", "$60.00", 1))
	reportPath := filepath.Join(dir, "report.json")

	out, err := runFinbuddy(t, dir, "analyze", stmt, "--report", reportPath, "--lenient")
	require.NoError(t, err, out)
	assert.Contains(t, out, "(unverified)")

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal(data, &rep))
	require.Len(t, rep.Holders, 1)
	assert.False(t, rep.Holders[0].Verified)
}

func TestAnalyze_WithoutWorkspace(t *testing.T) {
	// No init: defaults apply, the model cannot train, and rows
	// degrade to override hits plus CategoryOther.
	dir := t.TempDir()
	stmt := writeStatement(t, dir, sampleStatement)
	reportPath := filepath.Join(dir, "report.json")

	out, err := runFinbuddy(t, dir, "analyze", stmt, "--report", reportPath)
	require.NoError(t, err, out)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal(data, &rep))
	require.Len(t, rep.Holders, 1)
	assert.Equal(t, "shopping", string(rep.Holders[0].Transactions[0].Category))
	assert.Equal(t, "other", string(rep.Holders[0].Transactions[1].Category))
}

func TestAnalyze_MissingFile(t *testing.T) {
	dir := initWorkspace(t)
	_, err := runFinbuddy(t, dir, "analyze", filepath.Join(dir, "absent.txt"))
	require.Error(t, err)
}
