// Command seed inserts a demo contest with a few problems so the
// service is usable right after the schema is applied.
package main

import (
	"context"
	"log"

	"codearena/internal/domain/model"
	"codearena/internal/domain/repository"
	"codearena/internal/platform/config"
	"codearena/internal/platform/database"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

func main() {
	config.Load()
	database.Connect()
	defer database.Close()

	ctx := context.Background()
	contestRepo := repository.NewPgContestRepository(database.DB)
	problemRepo := repository.NewPgProblemRepository(database.DB)

	contest := &model.Contest{
		ID:          uuid.NewString(),
		Name:        "Weekly Sprint #1",
		Description: "Three warm-up problems. Judged automatically.",
	}
	if err := contestRepo.CreateContest(ctx, contest); err != nil {
		log.Fatalf("Failed to create contest: %v", err)
	}

	problems := []model.Problem{
		{
			Title:          "Add Two Numbers",
			Description:    "Read two integers and print their sum.",
			SampleInput:    "2 3",
			ExpectedOutput: "5",
			Points:         10,
		},
		{
			Title:          "Square a Number",
			Description:    "Read an integer and print its square.",
			SampleInput:    "4",
			ExpectedOutput: "16",
			Points:         10,
		},
		{
			Title:          "Factorial",
			Description:    "Read an integer n and print n!.",
			SampleInput:    "5",
			ExpectedOutput: "120",
			Points:         20,
		},
	}
	for i := range problems {
		p := &problems[i]
		p.ID = uuid.NewString()
		p.ContestID = contest.ID
		p.Slug = slug.Make(p.Title)
		if err := problemRepo.CreateProblem(ctx, p); err != nil {
			log.Fatalf("Failed to create problem %q: %v", p.Title, err)
		}
	}

	log.Printf("Seeded contest %s with %d problems", contest.ID, len(problems))
}
