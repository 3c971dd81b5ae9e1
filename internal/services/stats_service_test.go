package services

import (
	"context"
	"testing"

	"nanotasks/internal/models"
)

func TestStatsRollups(t *testing.T) {
	db, tasks, submissions := newTaskFixture(t)
	stats := NewStatsService(db)
	buyer := createTestUser(t, db, "buyer@test.com", models.RoleBuyer, 200)
	worker := createTestUser(t, db, "worker@test.com", models.RoleWorker, 0)
	createTestUser(t, db, "idle@test.com", models.RoleWorker, 0)

	ctx := context.Background()
	task, err := tasks.Create(ctx, principalFor(buyer), &models.CreateTaskRequest{
		TaskTitle:       "Stats task",
		RequiredWorkers: 3,
		PayableAmount:   10,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	sub, err := submissions.Submit(ctx, principalFor(worker), &models.SubmitRequest{TaskID: task.ID, Detail: "x"})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := submissions.Approve(ctx, principalFor(buyer), sub.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	adminStats, err := stats.AdminStats(ctx)
	if err != nil {
		t.Fatalf("AdminStats failed: %v", err)
	}
	if adminStats.TotalWorkers != 2 || adminStats.TotalBuyers != 1 {
		t.Errorf("unexpected user counts: %+v", adminStats)
	}
	// Buyer holds 170 after 30 escrow, worker earned 10.
	if adminStats.TotalCoins != 180 {
		t.Errorf("expected 180 coins in circulation, got %d", adminStats.TotalCoins)
	}

	buyerStats, err := stats.BuyerStats(ctx, "buyer@test.com")
	if err != nil {
		t.Fatalf("BuyerStats failed: %v", err)
	}
	if buyerStats.TaskCount != 1 || buyerStats.PendingSlots != 2 || buyerStats.TotalPaid != 10 {
		t.Errorf("unexpected buyer stats: %+v", buyerStats)
	}

	workerStats, err := stats.WorkerStats(ctx, "worker@test.com")
	if err != nil {
		t.Fatalf("WorkerStats failed: %v", err)
	}
	if workerStats.TotalSubmissions != 1 || workerStats.PendingSubmissions != 0 || workerStats.TotalEarnings != 10 {
		t.Errorf("unexpected worker stats: %+v", workerStats)
	}
}

func TestStatsSnapshot(t *testing.T) {
	db, tasks, submissions := newTaskFixture(t)
	stats := NewStatsService(db)
	buyer := createTestUser(t, db, "buyer@test.com", models.RoleBuyer, 100)
	worker := createTestUser(t, db, "worker@test.com", models.RoleWorker, 0)

	ctx := context.Background()
	task, err := tasks.Create(ctx, principalFor(buyer), &models.CreateTaskRequest{
		TaskTitle:       "Snapshot task",
		RequiredWorkers: 2,
		PayableAmount:   10,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := submissions.Submit(ctx, principalFor(worker), &models.SubmitRequest{TaskID: task.ID, Detail: "x"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	snapshot, err := stats.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snapshot.TotalUsers != 2 || snapshot.OpenTasks != 1 || snapshot.PendingSubmissions != 1 {
		t.Errorf("unexpected snapshot: %+v", snapshot)
	}

	var persisted int64
	db.Model(&models.PlatformStats{}).Count(&persisted)
	if persisted != 1 {
		t.Errorf("expected 1 snapshot row, got %d", persisted)
	}
}
