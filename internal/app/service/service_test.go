package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"stepik_backend/internal/app/session"
	"stepik_backend/internal/common"
	"stepik_backend/internal/common/security"
	"stepik_backend/internal/domain/model"
	"stepik_backend/internal/domain/repository/memory"
	"stepik_backend/internal/platform/logger"
	"stepik_backend/internal/platform/logger/loggertest"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap/zapcore"
)

type fixture struct {
	store       *memory.Store
	auth        *AuthService
	users       *UserService
	courses     *CourseService
	enrollments *EnrollmentService
	modules     *ModuleService
	tasks       *TaskService
	submissions *SubmissionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	security.Configure([]byte("test-secret"), time.Hour)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	log := logger.NewNop()
	st := memory.NewStore()
	return &fixture{
		store:       st,
		auth:        NewAuthService(st.Users(), session.NewRefreshStore(rdb, "test:", time.Hour), log),
		users:       NewUserService(st.Users(), st.Profiles(), log),
		courses:     NewCourseService(st.Courses(), st.Modules(), st.Tasks(), st.Enrollments(), log),
		enrollments: NewEnrollmentService(st.Courses(), st.Enrollments(), log),
		modules:     NewModuleService(st.Courses(), st.Modules(), st.Tasks(), log),
		tasks:       NewTaskService(st.Courses(), st.Modules(), st.Tasks(), log),
		submissions: NewSubmissionService(st.Submissions(), st.Enrollments(), st.Courses(), st.Modules(), st.Tasks(), log),
	}
}

func (f *fixture) actor(t *testing.T, role model.Role) model.Actor {
	t.Helper()
	id := uuid.NewString()
	u := &model.User{ID: id, Username: string(role) + "-" + id[:8], Email: id[:8] + "@example.com", HashedPassword: "x", Role: role}
	if err := f.store.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return model.Actor{UserID: id, Role: role}
}

// curriculum seeds one course with one module and one task authored by mentor.
func (f *fixture) curriculum(t *testing.T, mentor model.Actor) (*model.Course, *model.Module, *model.Task) {
	t.Helper()
	ctx := context.Background()
	course, err := f.courses.Create(ctx, mentor, CreateCourseRequest{Title: "Intro to Go"})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	mod, err := f.modules.Create(ctx, mentor, CreateModuleRequest{CourseID: course.ID, Title: "Basics"})
	if err != nil {
		t.Fatalf("create module: %v", err)
	}
	task, err := f.tasks.Create(ctx, mentor, CreateTaskRequest{ModuleID: mod.ID, Title: "Sum", Order: 1, TaskText: "add two numbers"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return course, mod, task
}

func TestCreateCourseRequiresMentorOrAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		role    model.Role
		allowed bool
	}{
		{model.RoleStudent, false},
		{model.RoleMentor, true},
		{model.RoleAdmin, true},
	}
	for _, tc := range cases {
		_, err := f.courses.Create(ctx, f.actor(t, tc.role), CreateCourseRequest{Title: "Course"})
		if tc.allowed && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.role, err)
		}
		if !tc.allowed && !errors.Is(err, common.ErrForbidden) {
			t.Fatalf("%s: got=%v want=%v", tc.role, err, common.ErrForbidden)
		}
	}
}

func TestCourseSlugAndLookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.actor(t, model.RoleMentor)

	course, err := f.courses.Create(ctx, mentor, CreateCourseRequest{Title: "Hello World"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if want := "hello-world-" + course.ID[:8]; course.Slug != want {
		t.Fatalf("slug: got=%q want=%q", course.Slug, want)
	}
	bySlug, err := f.courses.Get(ctx, mentor, course.Slug, false)
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if bySlug.ID != course.ID || bySlug.Author == nil || bySlug.Author.ID != mentor.UserID {
		t.Fatalf("unexpected course: %+v", bySlug)
	}
}

func TestEnrollTwiceReportsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.actor(t, model.RoleMentor)
	student := f.actor(t, model.RoleStudent)
	course, _, _ := f.curriculum(t, mentor)

	if _, err := f.enrollments.Enroll(ctx, student, course.ID); err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	_, err := f.enrollments.Enroll(ctx, student, course.ID)
	if !errors.Is(err, common.ErrAlreadyEnrolled) {
		t.Fatalf("second enroll: got=%v want=%v", err, common.ErrAlreadyEnrolled)
	}
	if got := common.HTTPStatusFromError(err); got != 400 {
		t.Fatalf("status: got=%d want=400", got)
	}

	mine, err := f.enrollments.ListMine(ctx, student)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("enrollments: got=%d want=1", len(mine))
	}
}

func TestUnenrollWithoutEnrollmentIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.actor(t, model.RoleMentor)
	student := f.actor(t, model.RoleStudent)
	course, _, _ := f.curriculum(t, mentor)

	_, err := f.enrollments.Unenroll(ctx, student, course.ID)
	if !errors.Is(err, common.ErrNotEnrolled) || !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("got=%v want=%v", err, common.ErrNotEnrolled)
	}

	if _, err := f.enrollments.Enroll(ctx, student, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := f.enrollments.Unenroll(ctx, student, course.ID); err != nil {
		t.Fatalf("unenroll: %v", err)
	}
	courses, _ := f.enrollments.MyCourses(ctx, student)
	if len(courses) != 0 {
		t.Fatalf("my courses after unenroll: got=%d want=0", len(courses))
	}
}

func TestDeactivatedCourseLeavesDefaultListing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.actor(t, model.RoleMentor)
	admin := f.actor(t, model.RoleAdmin)
	course, _, _ := f.curriculum(t, mentor)

	if err := f.courses.Deactivate(ctx, mentor, course.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	page, err := f.courses.List(ctx, mentor, ListCoursesQuery{Pagination: common.Pagination{Page: 1, PageSize: 20}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 0 {
		t.Fatalf("default listing: got=%d want=0", page.Total)
	}

	// Mentors cannot opt in; admins can, which shows the row is still stored.
	page, _ = f.courses.List(ctx, mentor, ListCoursesQuery{IncludeInactive: true, Pagination: common.Pagination{Page: 1, PageSize: 20}})
	if page.Total != 0 {
		t.Fatalf("mentor opt-in: got=%d want=0", page.Total)
	}
	page, _ = f.courses.List(ctx, admin, ListCoursesQuery{IncludeInactive: true, Pagination: common.Pagination{Page: 1, PageSize: 20}})
	if page.Total != 1 || page.Results[0].IsActive {
		t.Fatalf("admin opt-in: %+v", page)
	}

	if _, err := f.courses.Get(ctx, mentor, course.ID, false); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("get deactivated: got=%v want=%v", err, common.ErrNotFound)
	}
}

func TestCourseModificationRequiresOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.actor(t, model.RoleMentor)
	other := f.actor(t, model.RoleMentor)
	admin := f.actor(t, model.RoleAdmin)
	course, mod, task := f.curriculum(t, author)

	title := "Renamed"
	if _, err := f.courses.Update(ctx, other, course.ID, UpdateCourseRequest{Title: &title}); !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("foreign update: got=%v want=%v", err, common.ErrForbidden)
	}
	if err := f.modules.Deactivate(ctx, other, mod.ID); !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("foreign module delete: got=%v want=%v", err, common.ErrForbidden)
	}
	if err := f.tasks.Deactivate(ctx, other, task.ID); !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("foreign task delete: got=%v want=%v", err, common.ErrForbidden)
	}

	updated, err := f.courses.Update(ctx, admin, course.ID, UpdateCourseRequest{Title: &title})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Title != title {
		t.Fatalf("title: got=%q want=%q", updated.Title, title)
	}
}

func TestCreateUnderCourseReportsValidationReasons(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.actor(t, model.RoleMentor)
	other := f.actor(t, model.RoleMentor)
	course, mod, _ := f.curriculum(t, author)

	_, err := f.modules.Create(ctx, other, CreateModuleRequest{CourseID: course.ID, Title: "Intruder"})
	if !errors.Is(err, common.ErrCourseNotOwned) || !errors.Is(err, common.ErrValidation) {
		t.Fatalf("foreign course: got=%v want=%v", err, common.ErrCourseNotOwned)
	}
	_, err = f.modules.Create(ctx, author, CreateModuleRequest{CourseID: uuid.NewString(), Title: "Orphan"})
	if !errors.Is(err, common.ErrCourseNotFound) {
		t.Fatalf("missing course: got=%v want=%v", err, common.ErrCourseNotFound)
	}
	_, err = f.tasks.Create(ctx, other, CreateTaskRequest{ModuleID: mod.ID, Title: "X", TaskText: "x"})
	if !errors.Is(err, common.ErrCourseNotOwned) {
		t.Fatalf("foreign module: got=%v want=%v", err, common.ErrCourseNotOwned)
	}

	if err := f.modules.Deactivate(ctx, author, mod.ID); err != nil {
		t.Fatalf("deactivate module: %v", err)
	}
	_, err = f.tasks.Create(ctx, author, CreateTaskRequest{ModuleID: mod.ID, Title: "X", TaskText: "x"})
	if !errors.Is(err, common.ErrCourseNotFound) {
		t.Fatalf("inactive module: got=%v want=%v", err, common.ErrCourseNotFound)
	}
}

func TestModulesCountIgnoresInactiveModules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.actor(t, model.RoleMentor)
	course, mod, _ := f.curriculum(t, mentor)
	if _, err := f.modules.Create(ctx, mentor, CreateModuleRequest{CourseID: course.ID, Title: "Advanced"}); err != nil {
		t.Fatalf("second module: %v", err)
	}
	if err := f.modules.Deactivate(ctx, mentor, mod.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	got, err := f.courses.Get(ctx, mentor, course.ID, false)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ModulesCount != 1 || len(got.Modules) != 1 || got.Modules[0].Title != "Advanced" {
		t.Fatalf("modules: count=%d nested=%+v", got.ModulesCount, got.Modules)
	}
}

func TestTaskInputOutputs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.actor(t, model.RoleMentor)
	student := f.actor(t, model.RoleStudent)
	_, _, task := f.curriculum(t, mentor)

	if _, err := f.tasks.CreateInputOutput(ctx, student, task.ID, CreateInputOutputRequest{Input: "1 2", Output: "3"}); !errors.Is(err, common.ErrCourseNotOwned) {
		t.Fatalf("student fixture: got=%v want=%v", err, common.ErrCourseNotOwned)
	}
	io, err := f.tasks.CreateInputOutput(ctx, mentor, task.ID, CreateInputOutputRequest{Input: "1 2", Output: "3"})
	if err != nil {
		t.Fatalf("create io: %v", err)
	}

	got, err := f.tasks.Get(ctx, student, task.ID, false)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if len(got.InputOutputs) != 1 || got.InputOutputs[0].Output != "3" {
		t.Fatalf("input_outputs: %+v", got.InputOutputs)
	}

	if err := f.tasks.DeactivateInputOutput(ctx, mentor, io.ID); err != nil {
		t.Fatalf("deactivate io: %v", err)
	}
	ios, _ := f.tasks.ListInputOutputs(ctx, student, task.ID, false)
	if len(ios) != 0 {
		t.Fatalf("after deactivate: got=%d want=0", len(ios))
	}
}

func TestGradingPermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.actor(t, model.RoleMentor)
	other := f.actor(t, model.RoleMentor)
	admin := f.actor(t, model.RoleAdmin)
	student := f.actor(t, model.RoleStudent)
	course, _, task := f.curriculum(t, author)

	if _, err := f.enrollments.Enroll(ctx, student, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	sub, err := f.submissions.Create(ctx, student, CreateSubmissionRequest{TaskID: task.ID, CodeStudent: "print(1)"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	cases := []struct {
		name   string
		grader model.Actor
		want   error
	}{
		{"student", student, common.ErrForbidden},
		{"foreign mentor", other, common.ErrNotFound},
		{"author", author, nil},
		{"admin", admin, nil},
	}
	for _, tc := range cases {
		_, err := f.submissions.UpdateStatus(ctx, tc.grader, sub.ID, UpdateStatusRequest{Status: "accepted"})
		if tc.want == nil && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("%s: got=%v want=%v", tc.name, err, tc.want)
		}
	}

	if _, err := f.submissions.UpdateStatus(ctx, author, sub.ID, UpdateStatusRequest{Status: "done"}); !errors.Is(err, common.ErrInvalidStatus) {
		t.Fatalf("bad status: got=%v want=%v", err, common.ErrInvalidStatus)
	}
}

func TestGradingScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.actor(t, model.RoleMentor)
	student := f.actor(t, model.RoleStudent)
	course, _, task := f.curriculum(t, mentor)

	if _, err := f.enrollments.Enroll(ctx, student, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	sub, err := f.submissions.Create(ctx, student, CreateSubmissionRequest{TaskID: task.ID, CodeStudent: "print(sum(map(int, input().split())))"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.Status != model.StatusPending {
		t.Fatalf("initial status: got=%q want=%q", sub.Status, model.StatusPending)
	}

	if _, err := f.submissions.UpdateStatus(ctx, mentor, sub.ID, UpdateStatusRequest{Status: "accepted"}); err != nil {
		t.Fatalf("grade: %v", err)
	}

	mine, err := f.submissions.MySubmissions(ctx, student)
	if err != nil {
		t.Fatalf("my submissions: %v", err)
	}
	if len(mine) != 1 || mine[0].Status != model.StatusAccepted {
		t.Fatalf("student view: %+v", mine)
	}

	// Flat re-assignment: accepted may go back to wrong or pending.
	for _, next := range []string{"wrong", "pending", "accepted"} {
		got, err := f.submissions.UpdateStatus(ctx, mentor, sub.ID, UpdateStatusRequest{Status: next})
		if err != nil {
			t.Fatalf("regrade to %s: %v", next, err)
		}
		if string(got.Status) != next {
			t.Fatalf("regrade: got=%q want=%q", got.Status, next)
		}
	}
}

func TestSubmissionVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentorA := f.actor(t, model.RoleMentor)
	mentorB := f.actor(t, model.RoleMentor)
	admin := f.actor(t, model.RoleAdmin)
	s1 := f.actor(t, model.RoleStudent)
	s2 := f.actor(t, model.RoleStudent)
	courseA, _, taskA := f.curriculum(t, mentorA)
	courseB, _, taskB := f.curriculum(t, mentorB)

	for _, enr := range []struct {
		who    model.Actor
		course string
		task   string
	}{{s1, courseA.ID, taskA.ID}, {s2, courseA.ID, taskA.ID}, {s2, courseB.ID, taskB.ID}} {
		if _, err := f.enrollments.Enroll(ctx, enr.who, enr.course); err != nil {
			t.Fatalf("enroll: %v", err)
		}
		if _, err := f.submissions.Create(ctx, enr.who, CreateSubmissionRequest{TaskID: enr.task, CodeStudent: "x"}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	all := common.Pagination{Page: 1, PageSize: 50}
	cases := []struct {
		name  string
		actor model.Actor
		want  int
	}{
		{"student one", s1, 1},
		{"student two", s2, 2},
		{"mentor A", mentorA, 2},
		{"mentor B", mentorB, 1},
		{"admin", admin, 3},
	}
	for _, tc := range cases {
		page, err := f.submissions.List(ctx, tc.actor, ListSubmissionsQuery{Pagination: all})
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if page.Total != tc.want {
			t.Fatalf("%s: got=%d want=%d", tc.name, page.Total, tc.want)
		}
	}

	page, _ := f.submissions.List(ctx, admin, ListSubmissionsQuery{TaskID: taskB.ID, Pagination: all})
	if page.Total != 1 {
		t.Fatalf("task filter: got=%d want=1", page.Total)
	}
	if _, err := f.submissions.List(ctx, admin, ListSubmissionsQuery{Status: "bogus", Pagination: all}); !errors.Is(err, common.ErrInvalidStatus) {
		t.Fatalf("status filter: got=%v want=%v", err, common.ErrInvalidStatus)
	}
}

func TestSubmitRequiresEnrollmentAndActiveTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.actor(t, model.RoleMentor)
	student := f.actor(t, model.RoleStudent)
	course, _, task := f.curriculum(t, mentor)

	_, err := f.submissions.Create(ctx, student, CreateSubmissionRequest{TaskID: task.ID, CodeStudent: "x"})
	if !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("not enrolled: got=%v want=%v", err, common.ErrForbidden)
	}
	if _, err := f.enrollments.Enroll(ctx, student, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := f.tasks.Deactivate(ctx, mentor, task.ID); err != nil {
		t.Fatalf("deactivate task: %v", err)
	}
	_, err = f.submissions.Create(ctx, student, CreateSubmissionRequest{TaskID: task.ID, CodeStudent: "x"})
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("inactive task: got=%v want=%v", err, common.ErrValidation)
	}
}

func TestSubmissionDetailNestsTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.actor(t, model.RoleMentor)
	_, _, task := f.curriculum(t, mentor)

	sub, err := f.submissions.Create(ctx, mentor, CreateSubmissionRequest{TaskID: task.ID, CodeStudent: "x"})
	if err != nil {
		t.Fatalf("mentor submit: %v", err)
	}
	got, err := f.submissions.Get(ctx, mentor, sub.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Task == nil || got.Task.ID != task.ID || got.TaskTitle != "Sum" {
		t.Fatalf("detail: %+v", got)
	}
	if got.User == nil || got.User.ID != mentor.UserID {
		t.Fatalf("user brief: %+v", got.User)
	}
}

func TestGradingIsLogged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.actor(t, model.RoleMentor)
	_, _, task := f.curriculum(t, mentor)

	log, logs := loggertest.New(zapcore.InfoLevel)
	f.submissions.log = log

	sub, err := f.submissions.Create(ctx, mentor, CreateSubmissionRequest{TaskID: task.ID, CodeStudent: "x"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := f.submissions.UpdateStatus(ctx, mentor, sub.ID, UpdateStatusRequest{Status: "wrong"}); err != nil {
		t.Fatalf("grade: %v", err)
	}

	graded := logs.FilterMessage("submission graded").All()
	if len(graded) != 1 {
		t.Fatalf("graded entries: got=%d want=1", len(graded))
	}
	fields := graded[0].ContextMap()
	if fields["from"] != "pending" || fields["to"] != "wrong" {
		t.Fatalf("fields: %+v", fields)
	}
}

func TestUpdateRejectsBlankTitles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.actor(t, model.RoleMentor)
	course, mod, task := f.curriculum(t, mentor)
	blank := "   "

	if _, err := f.courses.Update(ctx, mentor, course.ID, UpdateCourseRequest{Title: &blank}); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("course: got=%v want=%v", err, common.ErrValidation)
	}
	if _, err := f.modules.Update(ctx, mentor, mod.ID, UpdateModuleRequest{Title: &blank}); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("module: got=%v want=%v", err, common.ErrValidation)
	}
	if _, err := f.tasks.Update(ctx, mentor, task.ID, UpdateTaskRequest{Title: &blank}); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("task: got=%v want=%v", err, common.ErrValidation)
	}

	stored, err := f.courses.Get(ctx, mentor, course.ID, false)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Title != course.Title {
		t.Fatalf("title changed to %q", stored.Title)
	}

	padded := "  Renamed  "
	updated, err := f.courses.Update(ctx, mentor, course.ID, UpdateCourseRequest{Title: &padded})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("title: got=%q want=%q", updated.Title, "Renamed")
	}
}

func TestListCoursesFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.actor(t, model.RoleMentor)
	bob := f.actor(t, model.RoleMentor)
	student := f.actor(t, model.RoleStudent)

	for _, c := range []struct {
		author model.Actor
		title  string
	}{
		{alice, "Go Concurrency"},
		{alice, "100% Python"},
		{bob, "go_tooling"},
		{bob, "Rust Basics"},
	} {
		if _, err := f.courses.Create(ctx, c.author, CreateCourseRequest{Title: c.title}); err != nil {
			t.Fatalf("create %q: %v", c.title, err)
		}
	}

	titles := func(q ListCoursesQuery) map[string]bool {
		t.Helper()
		q.Pagination = common.Pagination{Page: 1, PageSize: 20}
		page, err := f.courses.List(ctx, student, q)
		if err != nil {
			t.Fatalf("list %+v: %v", q, err)
		}
		got := map[string]bool{}
		for _, c := range page.Results {
			got[c.Title] = true
		}
		if page.Total != len(got) {
			t.Fatalf("total %d does not match %d results", page.Total, len(got))
		}
		return got
	}

	cases := []struct {
		name  string
		query ListCoursesQuery
		want  []string
	}{
		{"author", ListCoursesQuery{AuthorID: alice.UserID}, []string{"Go Concurrency", "100% Python"}},
		{"search is case-insensitive", ListCoursesQuery{Search: "GO"}, []string{"Go Concurrency", "go_tooling"}},
		{"author and search", ListCoursesQuery{AuthorID: bob.UserID, Search: "go"}, []string{"go_tooling"}},
		{"percent is literal", ListCoursesQuery{Search: "%"}, []string{"100% Python"}},
		{"underscore is literal", ListCoursesQuery{Search: "_"}, []string{"go_tooling"}},
		{"no match", ListCoursesQuery{Search: "haskell"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := titles(tc.query)
			if len(got) != len(tc.want) {
				t.Fatalf("got=%v want=%v", got, tc.want)
			}
			for _, title := range tc.want {
				if !got[title] {
					t.Fatalf("missing %q in %v", title, got)
				}
			}
		})
	}

	if _, err := f.courses.List(ctx, student, ListCoursesQuery{AuthorID: "not-an-id"}); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("malformed author: got=%v want=%v", err, common.ErrValidation)
	}
}
