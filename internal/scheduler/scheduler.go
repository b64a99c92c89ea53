package scheduler

import (
	"log"
	"time"

	"github.com/Barrelito/pannben-75/internal/service"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Start launches the nightly job that refreshes each started profile's
// cached recovery status and day counter shortly after midnight. Both
// fields are display hints; request paths recompute the real values.
func Start(gdb *gorm.DB) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	profiles := service.NewProfileService(gdb)
	progress := service.NewProgressService(gdb)

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 5, 0))),
		gocron.NewTask(func() {
			refreshRecoveryStatuses(profiles, progress)
		}),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	return s, nil
}

func refreshRecoveryStatuses(profiles *service.ProfileService, progress *service.ProgressService) {
	started, err := profiles.ListWithStartDate()
	if err != nil {
		log.Println("recovery refresh: list profiles:", err)
		return
	}

	now := time.Now()
	for _, profile := range started {
		grace := progress.CheckGracePeriod(profile.UserID, now)
		status := service.RecoveryStatusFor(grace)

		if err := profiles.SetRecoveryStatus(profile.UserID, status); err != nil {
			log.Printf("recovery refresh: user %d: %v", profile.UserID, err)
			continue
		}
		if err := profiles.SetCurrentDay(profile.UserID, service.DayNumber(profile.StartDate, now)); err != nil {
			log.Printf("recovery refresh: user %d: %v", profile.UserID, err)
		}
	}
}
