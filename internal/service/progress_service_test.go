package service

import (
	"testing"
	"time"

	"github.com/Barrelito/pannben-75/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.ChallengeProfile{}, &db.DailyLog{}, &db.DietPlan{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func createTestUser(t *testing.T, username string, start *time.Time, level string) uint {
	t.Helper()
	user := db.User{Username: username, Password: "x"}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	profile := db.ChallengeProfile{UserID: user.ID, StartDate: start, DifficultyLevel: level}
	if err := db.DB.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	return user.ID
}

func insertLog(t *testing.T, userID uint, date time.Time, completed bool) {
	t.Helper()
	log := db.DailyLog{UserID: userID, LogDate: normalizeToDate(date), IsCompleted: completed}
	if err := db.DB.Create(&log).Error; err != nil {
		t.Fatalf("failed to insert log: %v", err)
	}
}

func daysAgo(n int) time.Time {
	return normalizeToDate(time.Now()).AddDate(0, 0, -n)
}

func TestDayNumber(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	if got := DayNumber(&start, start); got != 1 {
		t.Fatalf("day number on start date: got %d, want 1", got)
	}
	if got := DayNumber(&start, start.AddDate(0, 0, 9)); got != 10 {
		t.Fatalf("day number after 9 days: got %d, want 10", got)
	}

	// Time of day must not shift the day count.
	lateEvening := time.Date(2025, 3, 11, 23, 45, 0, 0, time.Local)
	if got := DayNumber(&start, lateEvening); got != 2 {
		t.Fatalf("day number late evening: got %d, want 2", got)
	}

	if got := DayNumber(nil, start); got != 0 {
		t.Fatalf("day number without start date: got %d, want 0", got)
	}
	if got := DayNumber(&start, start.AddDate(0, 0, -2)); got != 0 {
		t.Fatalf("day number before start date: got %d, want 0", got)
	}
}

func TestComputeStreakEmptyHistory(t *testing.T) {
	result := ComputeStreak(nil, time.Now())
	if result.Current != 0 || result.Best != 0 {
		t.Fatalf("empty history: got %+v, want {0 0}", result)
	}
}

func TestComputeStreakConsecutiveRunEndingToday(t *testing.T) {
	var logs []db.DailyLog
	for i := 0; i < 10; i++ {
		logs = append(logs, db.DailyLog{LogDate: daysAgo(i), IsCompleted: true})
	}

	result := ComputeStreak(logs, time.Now())
	if result.Current != 10 || result.Best != 10 {
		t.Fatalf("10 consecutive days ending today: got %+v", result)
	}
}

func TestComputeStreakRunEndedInThePast(t *testing.T) {
	var logs []db.DailyLog
	for i := 3; i < 8; i++ {
		logs = append(logs, db.DailyLog{LogDate: daysAgo(i), IsCompleted: true})
	}

	result := ComputeStreak(logs, time.Now())
	if result.Current != 0 {
		t.Fatalf("run ending 3 days ago is not current, got %d", result.Current)
	}
	if result.Best != 5 {
		t.Fatalf("best run: got %d, want 5", result.Best)
	}
}

func TestComputeStreakRunEndingYesterdayStillCounts(t *testing.T) {
	var logs []db.DailyLog
	for i := 1; i <= 4; i++ {
		logs = append(logs, db.DailyLog{LogDate: daysAgo(i), IsCompleted: true})
	}

	result := ComputeStreak(logs, time.Now())
	if result.Current != 4 || result.Best != 4 {
		t.Fatalf("run ending yesterday: got %+v", result)
	}
}

func TestComputeStreakGapAndIncompleteBreakRuns(t *testing.T) {
	logs := []db.DailyLog{
		{LogDate: daysAgo(0), IsCompleted: true},
		{LogDate: daysAgo(1), IsCompleted: true},
		{LogDate: daysAgo(2), IsCompleted: false}, // incomplete day
		{LogDate: daysAgo(3), IsCompleted: true},
		{LogDate: daysAgo(4), IsCompleted: true},
		{LogDate: daysAgo(5), IsCompleted: true},
		// two-day gap
		{LogDate: daysAgo(8), IsCompleted: true},
	}

	result := ComputeStreak(logs, time.Now())
	if result.Current != 2 {
		t.Fatalf("current run: got %d, want 2", result.Current)
	}
	if result.Best != 3 {
		t.Fatalf("best run: got %d, want 3", result.Best)
	}
}

func TestCheckGracePeriodNotStarted(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	userID := createTestUser(t, "fresh", nil, db.DifficultyEasy)
	svc := NewProgressService(db.DB)

	result := svc.CheckGracePeriod(userID, time.Now())
	if !result.CanLogToday || result.StreakBroken || result.CurrentDay != 0 {
		t.Fatalf("not started: got %+v", result)
	}
}

func TestCheckGracePeriodFirstDay(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	today := daysAgo(0)
	userID := createTestUser(t, "dayone", &today, db.DifficultyEasy)
	svc := NewProgressService(db.DB)

	result := svc.CheckGracePeriod(userID, time.Now())
	if !result.CanLogToday || result.StreakBroken {
		t.Fatalf("first day: got %+v", result)
	}
	if result.CurrentDay != 1 {
		t.Fatalf("first day current day: got %d", result.CurrentDay)
	}
}

func TestCheckGracePeriodLoggedYesterday(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	start := daysAgo(5)
	userID := createTestUser(t, "ontrack", &start, db.DifficultyMedium)
	insertLog(t, userID, daysAgo(1), true)

	svc := NewProgressService(db.DB)
	result := svc.CheckGracePeriod(userID, time.Now())

	if !result.CanLogToday || result.MustLogYesterday || result.StreakBroken {
		t.Fatalf("logged yesterday: got %+v", result)
	}
	if result.DaysMissed != 0 {
		t.Fatalf("days missed: got %d, want 0", result.DaysMissed)
	}
	if result.CurrentDay != 6 {
		t.Fatalf("current day: got %d, want 6", result.CurrentDay)
	}
}

func TestCheckGracePeriodOneMissedDay(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	start := daysAgo(5)
	userID := createTestUser(t, "grace", &start, db.DifficultyMedium)
	insertLog(t, userID, daysAgo(2), true)

	svc := NewProgressService(db.DB)
	result := svc.CheckGracePeriod(userID, time.Now())

	if !result.MustLogYesterday {
		t.Fatalf("expected grace window, got %+v", result)
	}
	if result.StreakBroken || result.CanLogToday {
		t.Fatalf("grace window must block today until backfill: %+v", result)
	}
	if result.DaysMissed != 1 {
		t.Fatalf("days missed: got %d, want 1", result.DaysMissed)
	}
	if result.Message == "" {
		t.Fatal("grace window carries an advisory message")
	}
}

func TestCheckGracePeriodStreakBroken(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	start := daysAgo(10)
	userID := createTestUser(t, "broken", &start, db.DifficultyHard)
	insertLog(t, userID, daysAgo(3), true)

	svc := NewProgressService(db.DB)
	result := svc.CheckGracePeriod(userID, time.Now())

	if !result.StreakBroken {
		t.Fatalf("expected broken streak, got %+v", result)
	}
	if result.DaysMissed != 2 {
		t.Fatalf("days missed: got %d, want 2", result.DaysMissed)
	}
	if result.Message == "" {
		t.Fatal("broken streak carries a restart message")
	}
}

func TestCheckGracePeriodNoLogsAtAll(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	start := daysAgo(3)
	userID := createTestUser(t, "silent", &start, db.DifficultyEasy)

	svc := NewProgressService(db.DB)
	result := svc.CheckGracePeriod(userID, time.Now())

	// Three unlogged days since the start date.
	if !result.StreakBroken || result.DaysMissed != 3 {
		t.Fatalf("no logs since start: got %+v", result)
	}
}

func TestCheckGracePeriodFailsOpenOnStoreError(t *testing.T) {
	cleanup := setupTestDB(t)
	svc := NewProgressService(db.DB)

	// Kill the connection so every lookup fails.
	cleanup()

	result := svc.CheckGracePeriod(42, time.Now())
	if !result.CanLogToday {
		t.Fatalf("store failure must fail open, got %+v", result)
	}
	if result.Message == "" {
		t.Fatal("fail-open result carries an error-status message")
	}
}

func TestRecoveryStatusFor(t *testing.T) {
	cases := []struct {
		result GracePeriodResult
		want   string
	}{
		{GracePeriodResult{CanLogToday: true}, db.RecoveryGreen},
		{GracePeriodResult{MustLogYesterday: true}, db.RecoveryYellow},
		{GracePeriodResult{StreakBroken: true}, db.RecoveryRed},
	}
	for _, tc := range cases {
		if got := RecoveryStatusFor(&tc.result); got != tc.want {
			t.Fatalf("RecoveryStatusFor(%+v): got %s, want %s", tc.result, got, tc.want)
		}
	}
}
