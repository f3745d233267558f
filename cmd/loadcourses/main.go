package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chybby/tutorifull/internal/config"
	"github.com/chybby/tutorifull/internal/database"
	"github.com/chybby/tutorifull/internal/logger"
	"github.com/chybby/tutorifull/internal/model"
	"github.com/chybby/tutorifull/internal/repository"
)

// feedCourse is one course entry in the catalog feed the classutil scraper
// produces. Re-running the loader on a fresh feed refreshes names, statuses
// and enrolment numbers in place.
type feedCourse struct {
	DeptID   string      `json:"dept_id"`
	CourseID string      `json:"course_id"`
	Name     string      `json:"name"`
	Classes  []feedKlass `json:"classes"`
}

type feedKlass struct {
	KlassID  int64  `json:"klass_id"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Enrolled int    `json:"enrolled"`
	Capacity int    `json:"capacity"`
}

func main() {
	var feedPath string
	flag.StringVar(&feedPath, "feed", "catalog.json", "Path to the scraped catalog feed")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	raw, err := os.ReadFile(feedPath)
	if err != nil {
		log.Fatal().Err(err).Str("feed", feedPath).Msg("Failed to read catalog feed")
	}

	var feed []feedCourse
	if err := json.Unmarshal(raw, &feed); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse catalog feed")
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	courseRepo := repository.NewCourseRepository(pool)
	klassRepo := repository.NewKlassRepository(pool)

	fmt.Printf("=== Loading %d courses ===\n", len(feed))

	courseCount := 0
	klassCount := 0
	for i, fc := range feed {
		deptID, courseID, err := model.ParseCourseID(fc.DeptID + fc.CourseID)
		if err != nil {
			fmt.Printf("Skipping malformed course code %q %q\n", fc.DeptID, fc.CourseID)
			continue
		}

		course := &model.Course{
			CompoundID: deptID + courseID,
			DeptID:     deptID,
			CourseID:   courseID,
			Name:       fc.Name,
		}
		if err := courseRepo.Upsert(ctx, course); err != nil {
			fmt.Printf("Error upserting course %s: %v\n", course.CompoundID, err)
			continue
		}
		courseCount++

		klasses := make([]model.Klass, 0, len(fc.Classes))
		for _, k := range fc.Classes {
			klasses = append(klasses, model.Klass{
				KlassID:    k.KlassID,
				CompoundID: course.CompoundID,
				Type:       k.Type,
				Status:     model.KlassStatus(k.Status),
				Enrolled:   k.Enrolled,
				Capacity:   k.Capacity,
			})
		}
		if err := klassRepo.UpsertBatch(ctx, klasses); err != nil {
			if errors.Is(err, repository.ErrUnknownCourse) {
				fmt.Printf("Skipping classes for %s: feed names a course the catalog does not hold\n", course.CompoundID)
			} else {
				fmt.Printf("Error upserting classes for %s: %v\n", course.CompoundID, err)
			}
			continue
		}
		klassCount += len(klasses)

		if (i+1)%100 == 0 {
			fmt.Printf("Loaded %d courses...\n", i+1)
		}
	}

	fmt.Printf("\nLoad completed! %d courses, %d classes.\n", courseCount, klassCount)
}
