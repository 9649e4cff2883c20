package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Wednesday noon in the service timezone.
var foodNow = time.Date(2025, 6, 18, 12, 0, 0, 0, fixedZone)

func TestIsOpenAt(t *testing.T) {
	r := Restaurant{
		OpeningHours: []OpeningHours{{
			Days:  []int{1, 2, 3, 4, 5},
			Slots: []TimeSlot{{Start: "11:00", End: "14:00"}, {Start: "17:00", End: "21:00"}},
		}},
	}

	if !isOpenAt(r, foodNow) {
		t.Fatalf("expected open at Wednesday noon")
	}
	if isOpenAt(r, time.Date(2025, 6, 18, 15, 0, 0, 0, fixedZone)) {
		t.Fatalf("expected closed between slots")
	}
	if isOpenAt(r, time.Date(2025, 6, 22, 12, 0, 0, 0, fixedZone)) {
		t.Fatalf("expected closed on Sunday")
	}
}

func TestPickRestaurant_FiltersByLocation(t *testing.T) {
	restaurants := []Restaurant{
		{Name: "front", Location: "前門"},
		{Name: "back", Location: "後門"},
	}

	for i := 0; i < 10; i++ {
		pick, err := PickRestaurant(restaurants, []string{"後門"}, false, foodNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pick.Name != "back" {
			t.Fatalf("expected back-gate pick, got %s", pick.Name)
		}
	}
}

func TestPickRestaurant_OnlyOpen(t *testing.T) {
	restaurants := []Restaurant{
		{
			Name: "open", Location: "後門",
			OpeningHours: []OpeningHours{{Days: []int{3}, Slots: []TimeSlot{{Start: "11:00", End: "14:00"}}}},
		},
		{
			Name: "closed", Location: "後門",
			OpeningHours: []OpeningHours{{Days: []int{3}, Slots: []TimeSlot{{Start: "18:00", End: "21:00"}}}},
		},
	}

	for i := 0; i < 10; i++ {
		pick, err := PickRestaurant(restaurants, []string{"後門"}, true, foodNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pick.Name != "open" {
			t.Fatalf("only_open must exclude closed restaurants, got %s", pick.Name)
		}
	}
}

func TestPickRestaurant_NoCandidates(t *testing.T) {
	if _, err := PickRestaurant(nil, []string{"後門"}, false, foodNow); err == nil {
		t.Fatalf("expected error with no candidates")
	}
}

func TestLoadRestaurants(t *testing.T) {
	restaurants, err := LoadRestaurants("")
	if err != nil {
		t.Fatalf("empty path must load defaults: %v", err)
	}
	if len(restaurants) == 0 {
		t.Fatalf("default restaurant list is empty")
	}

	path := filepath.Join(t.TempDir(), "food.yaml")
	data := `
- name: 測試店
  address: 某路1號
  businesshours: "10:00-20:00"
  location: 前門
  opening_hours:
    - days: [1, 2]
      slots:
        - start: "10:00"
          end: "20:00"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	restaurants, err = LoadRestaurants(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(restaurants) != 1 || restaurants[0].Name != "測試店" {
		t.Fatalf("parsed data wrong: %+v", restaurants)
	}
	if len(restaurants[0].OpeningHours) != 1 || restaurants[0].OpeningHours[0].Slots[0].End != "20:00" {
		t.Fatalf("opening hours wrong: %+v", restaurants[0].OpeningHours)
	}

	if _, err := LoadRestaurants(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
