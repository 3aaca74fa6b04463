package model

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"admin", RoleAdmin, false},
		{" Mentor ", RoleMentor, false},
		{"student", RoleStudent, false},
		{"instructor", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseRole(%q): err=%v wantErr=%v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseRole(%q): got=%q want=%q", tc.in, got, tc.want)
		}
	}
	if Role("root").Valid() {
		t.Fatal("unknown role must not be valid")
	}
}

func TestParseSubmissionStatus(t *testing.T) {
	for _, s := range []string{"pending", "accepted", "wrong"} {
		if _, err := ParseSubmissionStatus(s); err != nil {
			t.Fatalf("ParseSubmissionStatus(%q): %v", s, err)
		}
	}
	for _, s := range []string{"Accepted", "WrongAnswer", ""} {
		if _, err := ParseSubmissionStatus(s); err == nil {
			t.Fatalf("ParseSubmissionStatus(%q) should fail", s)
		}
	}
}

func TestVisibilityAdmits(t *testing.T) {
	if ActiveOnly.Admits(false) {
		t.Fatal("ActiveOnly must hide inactive rows")
	}
	if !ActiveOnly.Admits(true) || !IncludeInactive.Admits(false) {
		t.Fatal("visibility filter admitted the wrong rows")
	}
}

func TestSubmissionScopeAdmits(t *testing.T) {
	sub := &Submission{UserID: "student-1", CourseAuthorID: "mentor-1"}

	cases := []struct {
		name  string
		scope SubmissionScope
		want  bool
	}{
		{"unrestricted", SubmissionScope{}, true},
		{"owner", SubmissionScope{UserID: "student-1"}, true},
		{"other student", SubmissionScope{UserID: "student-2"}, false},
		{"course author", SubmissionScope{CourseAuthorID: "mentor-1"}, true},
		{"other mentor", SubmissionScope{CourseAuthorID: "mentor-2"}, false},
	}
	for _, tc := range cases {
		if got := tc.scope.Admits(sub); got != tc.want {
			t.Fatalf("%s: got=%v want=%v", tc.name, got, tc.want)
		}
	}
}

func TestUserBrief(t *testing.T) {
	var nilUser *User
	if nilUser.Brief() != nil {
		t.Fatal("nil user must have nil brief")
	}
	u := &User{ID: "1", Username: "ann", Email: "a@x.io", Role: RoleStudent, HashedPassword: "h"}
	b := u.Brief()
	if b.ID != "1" || b.Username != "ann" || b.Role != RoleStudent {
		t.Fatalf("unexpected brief: %+v", b)
	}
}
