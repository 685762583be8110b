package model

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"admin", RoleAdmin, true},
		{"ADMIN", RoleAdmin, true},
		{"AdMiN", RoleAdmin, true},
		{" admin ", RoleAdmin, true},
		{"cashier", RoleCashier, true},
		{"Cashier", RoleCashier, true},
		{"manager", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := ParseRole(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseRole(%q) = (%q,%v), want (%q,%v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestValidCategory(t *testing.T) {
	if got, ok := ValidCategory(" Shoes "); !ok || got != "shoes" {
		t.Fatalf("expected normalized shoes, got (%q,%v)", got, ok)
	}
	if _, ok := ValidCategory("electronics"); ok {
		t.Fatalf("electronics must not be a valid category")
	}
	if _, ok := ValidCategory(""); ok {
		t.Fatalf("empty category must be rejected")
	}
}
