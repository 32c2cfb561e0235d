package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/careerkit/careerkit-service/internal/models"
	"github.com/careerkit/careerkit-service/internal/testutil"
)

func TestCourseService_CreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "creator")
	svc := NewCourseService(env.repo, env.db, env.logger, env.validator)
	ctx := context.Background()

	course, err := svc.Create(ctx, &CreateCourseRequest{
		Title:    "Go in Production",
		Category: "Engineering",
		Level:    models.LevelIntermediate,
		Price:    25,
	}, "creator")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if course.Price != 0 {
		t.Errorf("free course price = %v, want 0", course.Price)
	}
	if course.Status != models.CourseActive {
		t.Errorf("status = %s, want active", course.Status)
	}

	got, err := svc.Get(ctx, course.ID, "creator")
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsCreator || got.EnrollmentCount != 0 {
		t.Errorf("Get() = %+v", got)
	}

	other, err := svc.Get(ctx, course.ID, "someone")
	if err != nil {
		t.Fatal(err)
	}
	if other.IsCreator {
		t.Error("IsCreator should be false for other users")
	}
}

func TestCourseService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCourseService(env.repo, env.db, env.logger, env.validator)

	_, err := svc.Create(context.Background(), &CreateCourseRequest{Title: "x"}, "creator")
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("error = %v, want validation failure", err)
	}
}

func TestCourseService_OwnerOnlyMutations(t *testing.T) {
	env := newTestEnv(t)
	course := testutil.CreateCourse(t, env.db, "creator", false, 0)
	svc := NewCourseService(env.repo, env.db, env.logger, env.validator)
	ctx := context.Background()

	title := "Renamed"
	if _, err := svc.Update(ctx, course.ID, &UpdateCourseRequest{Title: &title}, "intruder"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Update() by non-creator error = %v", err)
	}
	if err := svc.Delete(ctx, course.ID, "intruder"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Delete() by non-creator error = %v", err)
	}

	updated, err := svc.Update(ctx, course.ID, &UpdateCourseRequest{Title: &title}, "creator")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("title = %q", updated.Title)
	}

	if err := svc.Delete(ctx, course.ID, "creator"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, course.ID, "creator"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("Get() after delete error = %v", err)
	}
}

func TestCourseService_ListCountsApprovedOnly(t *testing.T) {
	env := newTestEnv(t)
	for _, id := range []string{"creator", "a", "b"} {
		testutil.CreateUser(t, env.db, id)
	}
	course := testutil.CreateCourse(t, env.db, "creator", true, 30)
	enrollments := NewEnrollmentService(env.repo, env.db, env.logger, env.validator, env.publisher)
	svc := NewCourseService(env.repo, env.db, env.logger, env.validator)
	ctx := context.Background()

	first, err := enrollments.Enroll(ctx, course.ID, "a", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enrollments.Enroll(ctx, course.ID, "b", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := enrollments.Decide(ctx, first.ID, "creator", &EnrollmentDecisionRequest{Status: models.EnrollmentApproved}); err != nil {
		t.Fatal(err)
	}

	list, err := svc.List(ctx, CourseListFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if list.Total != 1 || len(list.Courses) != 1 {
		t.Fatalf("List() = %+v", list)
	}
	if list.Courses[0].EnrollmentCount != 1 {
		t.Errorf("enrollment count = %d, want 1 (approved only)", list.Courses[0].EnrollmentCount)
	}

	mine, err := svc.ListMine(ctx, "creator")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 {
		t.Errorf("ListMine() = %d courses, want 1", len(mine))
	}
}

func TestExportService_ExportRoster(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "creator")
	testutil.CreateUser(t, env.db, "student")
	course := testutil.CreateCourse(t, env.db, "creator", true, 100)
	enrollments := NewEnrollmentService(env.repo, env.db, env.logger, env.validator, env.publisher)
	ctx := context.Background()

	if _, err := enrollments.Enroll(ctx, course.ID, "student", &EnrollRequest{TransactionID: "TXN1", PaymentMethod: "PayPal"}); err != nil {
		t.Fatal(err)
	}

	svc := NewExportService(env.repo, env.db, env.logger)
	if _, err := svc.ExportRoster(ctx, course.ID, "student"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("non-creator export error = %v", err)
	}

	export, err := svc.ExportRoster(ctx, course.ID, "creator")
	if err != nil {
		t.Fatalf("ExportRoster() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(export.Data))
	if err != nil {
		t.Fatalf("roster is not a valid workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(rosterSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(rows))
	}
	if rows[1][1] != "student@example.com" || rows[1][2] != "pending" || rows[1][4] != "TXN1" {
		t.Errorf("roster row = %v", rows[1])
	}
}
