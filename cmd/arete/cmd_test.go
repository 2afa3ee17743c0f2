// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Tests helpers, command flags, and end-to-end runs over sqlite.
package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/arete/internal/storage"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exactly max", "hello", 5, "hello"},
		{"longer than max", "hello world", 8, "hello..."},
		{"empty string", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{"shorter than length", "ab", 5, "ab   "},
		{"exactly length", "abcde", 5, "abcde"},
		{"longer than length", "abcdef", 5, "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padRight(tt.input, tt.length); got != tt.want {
				t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
			}
		})
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortID = %q, want %q", got, "01234567")
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID = %q, want %q", got, "abc")
	}
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "arete" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "arete")
	}
	if rootCmd.Short == "" {
		t.Error("Expected rootCmd.Short to be non-empty")
	}
	if rootCmd.PersistentFlags().Lookup("user") == nil {
		t.Error("Expected --user persistent flag on root command")
	}
}

func TestWorkoutCmdFlags(t *testing.T) {
	if workoutCmd.Flags().Lookup("categories") == nil {
		t.Error("Expected --categories flag on workout command")
	}
}

func TestWorkoutCmdSubcommands(t *testing.T) {
	expected := []string{"set", "exercise", "mastery"}
	names := make(map[string]bool)
	for _, cmd := range workoutCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range expected {
		if !names[want] {
			t.Errorf("Expected workout subcommand %q to be registered", want)
		}
	}
}

func TestTaskCmdSubcommands(t *testing.T) {
	expected := []string{"add", "done", "list", "delete"}
	names := make(map[string]bool)
	for _, cmd := range taskCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range expected {
		if !names[want] {
			t.Errorf("Expected task subcommand %q to be registered", want)
		}
	}
}

func TestStatsCmdSubcommands(t *testing.T) {
	expected := []string{"streaks", "categories", "completion", "trend"}
	names := make(map[string]bool)
	for _, cmd := range statsCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range expected {
		t.Run(want, func(t *testing.T) {
			if !names[want] {
				t.Errorf("Expected stats subcommand %q to be registered", want)
			}
		})
	}
}

func TestSyncCmdSubcommands(t *testing.T) {
	expected := []string{"link", "unlink", "status", "repair", "reset", "wipe"}
	names := make(map[string]bool)
	for _, cmd := range syncCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range expected {
		if !names[want] {
			t.Errorf("Expected sync subcommand %q to be registered", want)
		}
	}
}

func TestStatsCompletionCmdFlags(t *testing.T) {
	periodFlag := statsCompletionCmd.Flags().Lookup("period")
	if periodFlag == nil {
		t.Fatal("Expected --period flag on stats completion command")
	}
	if periodFlag.DefValue != "week" {
		t.Errorf("Expected default period week, got %s", periodFlag.DefValue)
	}
}

func TestExportCmdFlags(t *testing.T) {
	formatFlag := exportCmd.Flags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("Expected --format flag on export command")
	}
	if formatFlag.DefValue != "json" {
		t.Errorf("Expected default format json, got %s", formatFlag.DefValue)
	}
	if exportCmd.Flags().Lookup("output") == nil {
		t.Error("Expected --output flag on export command")
	}
}

func TestXPAwardCmdFlags(t *testing.T) {
	sourceFlag := xpAwardCmd.Flags().Lookup("source")
	if sourceFlag == nil {
		t.Fatal("Expected --source flag on xp award command")
	}
	if sourceFlag.DefValue != "manual" {
		t.Errorf("Expected default source manual, got %s", sourceFlag.DefValue)
	}
	if xpAwardCmd.Flags().Lookup("category") == nil {
		t.Error("Expected --category flag on xp award command")
	}
}

func TestMealCmdFlags(t *testing.T) {
	if mealCmd.Flags().Lookup("protein") == nil {
		t.Error("Expected --protein flag on meal command")
	}
}

func TestBodyweightCmdFlags(t *testing.T) {
	if bodyweightCmd.Flags().Lookup("unit") == nil {
		t.Error("Expected --unit flag on bodyweight command")
	}
	if bodyweightCmd.Flags().Lookup("notes") == nil {
		t.Error("Expected --notes flag on bodyweight command")
	}
}

func TestMcpCmdExists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "mcp" {
			found = true
		}
	}
	if !found {
		t.Error("Expected mcp command to be registered")
	}
	if mcpCmd.Long == "" {
		t.Error("Expected mcp command to have a long description")
	}
}

func TestAchievementsCmdSubcommands(t *testing.T) {
	found := false
	for _, cmd := range achievementsCmd.Commands() {
		if cmd.Name() == "claim" {
			found = true
		}
	}
	if !found {
		t.Error("Expected achievements claim subcommand to be registered")
	}
}

// setupTestCLI points the CLI at a sqlite store in a temp directory by
// writing a config file and redirecting XDG_CONFIG_HOME.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "arete")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	cfg := map[string]string{"backend": "sqlite", "data_dir": tmpDir}
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), data, 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	userID = "default"
	t.Cleanup(func() {
		repo = nil
		eng = nil
	})
	return tmpDir
}

// openTestDB opens the sqlite store the CLI wrote to, for verification.
func openTestDB(t *testing.T, dataDir string) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(dataDir, "arete.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestXPAwardCmdWithStore(t *testing.T) {
	dataDir := setupTestCLI(t)

	xpCategory = ""
	xpSource = "manual"
	xpDetails = ""

	rootCmd.SetArgs([]string{"xp", "award", "120"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("xp award command failed: %v", err)
	}

	db := openTestDB(t, dataDir)
	progress, err := db.GetProgress("default")
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if progress.TotalXP != 120 {
		t.Errorf("Expected 120 XP, got %d", progress.TotalXP)
	}
	if progress.Level != 2 {
		t.Errorf("Expected level 2, got %d", progress.Level)
	}
}

func TestWorkoutCmdWithStore(t *testing.T) {
	dataDir := setupTestCLI(t)

	workoutCategories = nil

	rootCmd.SetArgs([]string{"workout", "medium", "--categories", "push"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("workout command failed: %v", err)
	}

	db := openTestDB(t, dataDir)
	progress, err := db.GetProgress("default")
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	// 50 workout XP plus the 50 XP first-workout achievement reward.
	if progress.TotalXP != 100 {
		t.Errorf("Expected 100 XP, got %d", progress.TotalXP)
	}
	if state, ok := progress.CategoryProgress["push"]; !ok || state.XP != 50 {
		t.Errorf("Expected push category XP 50, got %+v", state)
	}
	if !progress.HasAchievement("first_workout") {
		t.Error("Expected first_workout achievement to be unlocked")
	}
}

func TestWorkoutCmdInvalidDifficulty(t *testing.T) {
	setupTestCLI(t)

	workoutCategories = nil

	rootCmd.SetArgs([]string{"workout", "brutal", "--categories", "push"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("Expected error for invalid difficulty")
	}
}

func TestTaskAddAndDoneCmdWithStore(t *testing.T) {
	dataDir := setupTestCLI(t)

	taskCategory = ""
	taskDomain = ""
	taskRecurrence = ""
	taskWeekdays = nil
	taskPriority = ""
	taskLabels = nil

	rootCmd.SetArgs([]string{"task", "add", "meditate", "--priority", "high"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("task add command failed: %v", err)
	}

	db := openTestDB(t, dataDir)
	tasks, err := db.ListTasks()
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}
	prefix := tasks[0].ID.String()[:8]
	db.Close()

	rootCmd.SetArgs([]string{"task", "done", prefix})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("task done command failed: %v", err)
	}

	db2 := openTestDB(t, dataDir)
	progress, err := db2.GetProgress("default")
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	// 40 task XP plus the 25 XP first-task achievement reward.
	if progress.TotalXP != 65 {
		t.Errorf("Expected 65 XP, got %d", progress.TotalXP)
	}
	updated, err := db2.GetTask(prefix)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if updated.CurrentStreak != 1 {
		t.Errorf("Expected streak 1, got %d", updated.CurrentStreak)
	}
}

func TestTaskDoneCmdNotFound(t *testing.T) {
	setupTestCLI(t)

	rootCmd.SetArgs([]string{"task", "done", "deadbeef"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("Expected error for unknown task")
	}
}

func TestExportCmdToFile(t *testing.T) {
	dataDir := setupTestCLI(t)

	xpCategory = ""
	xpSource = "manual"
	xpDetails = ""

	rootCmd.SetArgs([]string{"xp", "award", "50"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("xp award command failed: %v", err)
	}

	outPath := filepath.Join(dataDir, "backup.json")
	exportFormat = "json"
	exportOutput = ""
	rootCmd.SetArgs([]string{"export", "-o", outPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("export command failed: %v", err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read export file: %v", err)
	}
	var data storage.ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("Export is not valid JSON: %v", err)
	}
	if data.Tool != "arete" {
		t.Errorf("Expected tool arete, got %q", data.Tool)
	}
	if len(data.Progress) != 1 {
		t.Errorf("Expected 1 progress document, got %d", len(data.Progress))
	}
}

func TestExportCmdInvalidFormat(t *testing.T) {
	setupTestCLI(t)

	exportFormat = "xml"
	exportOutput = ""
	rootCmd.SetArgs([]string{"export"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("Expected error for invalid export format")
	}
	exportFormat = "json"
}

func TestImportCmdRoundTrip(t *testing.T) {
	dataDir := setupTestCLI(t)

	xpCategory = ""
	xpSource = "manual"
	xpDetails = ""

	rootCmd.SetArgs([]string{"xp", "award", "75"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("xp award command failed: %v", err)
	}

	outPath := filepath.Join(dataDir, "backup.json")
	exportFormat = "json"
	exportOutput = ""
	rootCmd.SetArgs([]string{"export", "-o", outPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("export command failed: %v", err)
	}

	// Import into a fresh store.
	freshDir := setupTestCLI(t)
	rootCmd.SetArgs([]string{"import", outPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("import command failed: %v", err)
	}

	db := openTestDB(t, freshDir)
	progress, err := db.GetProgress("default")
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if progress.TotalXP != 75 {
		t.Errorf("Expected 75 XP after import, got %d", progress.TotalXP)
	}
}

func TestImportCmdFileNotFound(t *testing.T) {
	setupTestCLI(t)

	rootCmd.SetArgs([]string{"import", "/nonexistent/backup.json"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("Expected error for missing import file")
	}
}

func TestMealCmdWithStore(t *testing.T) {
	dataDir := setupTestCLI(t)

	mealProtein = 0
	mealDetails = ""

	rootCmd.SetArgs([]string{"meal", "--protein", "25"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("meal command failed: %v", err)
	}

	db := openTestDB(t, dataDir)
	progress, err := db.GetProgress("default")
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if progress.TotalXP != 15 {
		t.Errorf("Expected 15 XP for high-protein meal, got %d", progress.TotalXP)
	}
}

func TestBodyweightCmdWithStore(t *testing.T) {
	dataDir := setupTestCLI(t)

	bodyweightUnit = ""
	bodyweightNotes = ""

	rootCmd.SetArgs([]string{"bodyweight", "82.5"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("bodyweight command failed: %v", err)
	}

	db := openTestDB(t, dataDir)
	progress, err := db.GetProgress("default")
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if len(progress.Bodyweight) != 1 {
		t.Fatalf("Expected 1 bodyweight entry, got %d", len(progress.Bodyweight))
	}
	if progress.Bodyweight[0].Weight != 82.5 || progress.Bodyweight[0].Unit != "kg" {
		t.Errorf("Unexpected bodyweight entry: %+v", progress.Bodyweight[0])
	}
	if progress.TotalXP != 0 {
		t.Errorf("Bodyweight should award no XP, got %d", progress.TotalXP)
	}
}

func TestRootCmdLongDescription(t *testing.T) {
	if rootCmd.Long == "" {
		t.Error("Expected root command to have a long description")
	}
}

func TestTaskCmdLongDescription(t *testing.T) {
	if taskCmd.Long == "" {
		t.Error("Expected task command to have a long description")
	}
}

func TestSyncCmdLongDescription(t *testing.T) {
	if syncCmd.Long == "" {
		t.Error("Expected sync command to have a long description")
	}
}
