package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"crew-management-api/models"
)

var submissionColumns = []string{
	"submission_id", "assignment_type", "assignment_id", "version", "status",
	"comment", "submission_links", "submitted_by", "submitted_at",
	"current_reviewer", "reviewed_by", "review_comment", "reviewed_at",
}

func submissionRow(id int64, assignmentType string, assignmentID int64, status string, submittedBy int64, currentReviewer interface{}) []driver.Value {
	return []driver.Value{
		id, assignmentType, assignmentID, int64(1), status,
		nil, nil, submittedBy, time.Now().Add(-time.Hour),
		currentReviewer, nil, nil, nil,
	}
}

func TestClaimUsesSingleConditionalUpdate(t *testing.T) {
	claimPattern := regexp.MustCompile(
		"UPDATE `submissions` SET `current_reviewer`=\\? WHERE submission_id = \\? AND current_reviewer IS NULL")

	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: claimPattern,
			args:    []driver.Value{int64(5), int64(7)},
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE `submissions`\\.`submission_id` = \\?"),
			args:    []driver.Value{int64(7), int64(1)},
			columns: submissionColumns,
			rows: [][]driver.Value{
				submissionRow(7, "task", 42, "ready_for_review", 3, int64(5)),
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `submission_files`"),
			columns: []string{"file_id", "submission_id", "file_path", "file_name", "file_size", "uploaded_by"},
			rows:    [][]driver.Value{},
		},
		{
			// Reviewer crew
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `crews`"),
			columns: []string{"crew_id", "user_id"},
			rows:    [][]driver.Value{{int64(5), int64(50)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `users`"),
			columns: []string{"user_id", "user_fname", "user_lname", "email"},
			rows:    [][]driver.Value{{int64(50), "Rita", "Reviewer", "rita@example.com"}},
		},
		{
			// Submitter crew
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `crews`"),
			columns: []string{"crew_id", "user_id"},
			rows:    [][]driver.Value{{int64(3), int64(30)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `users`"),
			columns: []string{"user_id", "user_fname", "user_lname", "email"},
			rows:    [][]driver.Value{{int64(30), "Sam", "Submitter", "sam@example.com"}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	submission, err := NewReviewService(db).Claim(7, 5)
	if err != nil {
		t.Fatalf("Claim returned error: %v", err)
	}
	if submission.CurrentReviewer == nil || *submission.CurrentReviewer != 5 {
		t.Fatalf("expected current_reviewer 5, got %v", submission.CurrentReviewer)
	}
	if submission.Submitter == nil || submission.Submitter.User == nil || submission.Submitter.User.Email != "sam@example.com" {
		t.Fatalf("expected submitter resolved, got %+v", submission.Submitter)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClaimConflictWhenSlotTaken(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `submissions` SET `current_reviewer`=\\? WHERE submission_id = \\? AND current_reviewer IS NULL"),
			args:    []driver.Value{int64(6), int64(7)},
			result:  scriptedResult{rowsAffected: 0},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewReviewService(db).Claim(7, 6)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// The loser must not trigger any follow-up read or write.
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClaimExclusivityAcrossSequentialRacers(t *testing.T) {
	claimPattern := regexp.MustCompile("AND current_reviewer IS NULL")
	steps := []*queryStep{
		{kind: kindExec, pattern: claimPattern, result: scriptedResult{rowsAffected: 1}},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions`"),
			columns: submissionColumns,
			rows:    [][]driver.Value{submissionRow(7, "task", 42, "ready_for_review", 3, int64(5))},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `submission_files`"),
			columns: []string{"file_id", "submission_id"},
			rows:    [][]driver.Value{},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `crews`"),
			columns: []string{"crew_id", "user_id"},
			rows:    [][]driver.Value{{int64(5), int64(50)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `users`"),
			columns: []string{"user_id"},
			rows:    [][]driver.Value{{int64(50)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `crews`"),
			columns: []string{"crew_id", "user_id"},
			rows:    [][]driver.Value{{int64(3), int64(30)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `users`"),
			columns: []string{"user_id"},
			rows:    [][]driver.Value{{int64(30)}},
		},
		// Second racer loses: zero rows affected, nothing else.
		{kind: kindExec, pattern: claimPattern, result: scriptedResult{rowsAffected: 0}},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewReviewService(db)

	won, err := svc.Claim(7, 5)
	if err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	if won.CurrentReviewer == nil || *won.CurrentReviewer != 5 {
		t.Fatalf("winner should hold the claim slot, got %v", won.CurrentReviewer)
	}

	if _, err := svc.Claim(7, 6); !errors.Is(err, ErrConflict) {
		t.Fatalf("second claim should conflict, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecideApproveCascadesToWorkItem(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE `submissions`\\.`submission_id` = \\?"),
			args:    []driver.Value{int64(7), int64(1)},
			columns: submissionColumns,
			rows:    [][]driver.Value{submissionRow(7, "deliverable", 5, "ready_for_review", 3, nil)},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `submissions` SET `review_comment`=\\?,`reviewed_at`=\\?,`reviewed_by`=\\?,`status`=\\? WHERE submission_id = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind: kindExec,
			pattern: regexp.MustCompile(
				"UPDATE `deliverables` SET `approved_at`=\\?,`approved_submission_id`=\\?,`last_status_update_by`=\\?,`last_status_updated_at`=\\?,`status`=\\?,`update_at`=\\?,`workflow_status`=\\? WHERE deliverable_id = \\? AND delete_at IS NULL"),
			result: scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `notifications`"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	submission, err := NewReviewService(db).Decide(7, 9, ReviewActionApprove, nil)
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if submission.Status != models.SubmissionStatusApproved {
		t.Fatalf("expected status approved, got %q", submission.Status)
	}
	if submission.ReviewedBy == nil || *submission.ReviewedBy != 9 {
		t.Fatalf("expected reviewed_by 9, got %v", submission.ReviewedBy)
	}
	if submission.ReviewedAt == nil {
		t.Fatal("expected reviewed_at to be set")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecideRequestChangesLeavesWorkItemOpen(t *testing.T) {
	comment := "needs better lighting"

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE `submissions`\\.`submission_id` = \\?"),
			args:    []driver.Value{int64(8), int64(1)},
			columns: submissionColumns,
			rows:    [][]driver.Value{submissionRow(8, "task", 10, "ready_for_review", 3, nil)},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `submissions` SET `review_comment`=\\?,`reviewed_at`=\\?,`reviewed_by`=\\?,`status`=\\? WHERE submission_id = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			// No status/approved_at columns: the task stays open for further
			// submissions.
			kind: kindExec,
			pattern: regexp.MustCompile(
				"UPDATE `tasks` SET `last_status_update_by`=\\?,`last_status_updated_at`=\\?,`update_at`=\\?,`workflow_status`=\\? WHERE task_id = \\? AND delete_at IS NULL"),
			result: scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `notifications`"),
			result:  scriptedResult{lastInsertID: 2, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	submission, err := NewReviewService(db).Decide(8, 9, ReviewActionRequestChanges, &comment)
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if submission.Status != models.SubmissionStatusChangesNeeded {
		t.Fatalf("expected status changes_requested, got %q", submission.Status)
	}
	if submission.ReviewComment == nil || *submission.ReviewComment != comment {
		t.Fatalf("expected review comment preserved, got %v", submission.ReviewComment)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecideStopsWhenCascadeFails(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE `submissions`\\.`submission_id` = \\?"),
			args:    []driver.Value{int64(7), int64(1)},
			columns: submissionColumns,
			rows:    [][]driver.Value{submissionRow(7, "task", 42, "ready_for_review", 3, nil)},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `submissions`"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			// The work item vanished mid-flight; the whole decision rolls
			// back and no notification is written.
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `tasks`"),
			result:  scriptedResult{rowsAffected: 0},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewReviewService(db).Decide(7, 9, ReviewActionApprove, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecideMissingSubmission(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE `submissions`\\.`submission_id` = \\?"),
			args:    []driver.Value{int64(99), int64(1)},
			columns: submissionColumns,
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewReviewService(db).Decide(99, 9, ReviewActionApprove, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecideRejectsUnknownAction(t *testing.T) {
	_, err := NewReviewService(nil).Decide(7, 9, "escalate", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
