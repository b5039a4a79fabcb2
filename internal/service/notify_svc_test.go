package service

import (
	"reflect"
	"testing"
)

func TestDedupeRecipients_KeepsFirstSeenOrder(t *testing.T) {
	got := DedupeRecipients([]string{"s1", "s2", "s1", "s3", "s2"})
	want := []string{"s1", "s2", "s3"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDedupeRecipients_DropsEmptyIDs(t *testing.T) {
	got := DedupeRecipients([]string{"", "s1", "", "s2"})
	want := []string{"s1", "s2"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDedupeRecipients_Empty(t *testing.T) {
	if got := DedupeRecipients(nil); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestTargetConstructors(t *testing.T) {
	if target := TargetUser("u1"); target.UserID != "u1" || target.Role != "" || target.Users != nil {
		t.Errorf("TargetUser built %+v", target)
	}
	if target := TargetRole("coordinator"); target.Role != "coordinator" || target.UserID != "" {
		t.Errorf("TargetRole built %+v", target)
	}
	if target := TargetUsers([]string{"a", "b"}); len(target.Users) != 2 || target.UserID != "" {
		t.Errorf("TargetUsers built %+v", target)
	}
}
