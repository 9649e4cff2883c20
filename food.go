package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Restaurant describes one pick candidate. Days use 0=Sunday..6=Saturday;
// slots are HH:MM wall-clock ranges.
type Restaurant struct {
	Name          string         `yaml:"name" json:"food"`
	Address       string         `yaml:"address" json:"address"`
	BusinessHours string         `yaml:"businesshours" json:"businesshours"`
	Location      string         `yaml:"location" json:"location"`
	OpeningHours  []OpeningHours `yaml:"opening_hours" json:"-"`
}

type OpeningHours struct {
	Days  []int      `yaml:"days"`
	Slots []TimeSlot `yaml:"slots"`
}

type TimeSlot struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

var defaultRestaurants = []Restaurant{
	{
		Name: "阿婆麵店", Address: "中壢區新中北路100號", BusinessHours: "11:00-20:00", Location: "後門",
		OpeningHours: []OpeningHours{{Days: []int{1, 2, 3, 4, 5, 6}, Slots: []TimeSlot{{Start: "11:00", End: "20:00"}}}},
	},
	{
		Name: "大學滷味", Address: "中壢區中大路55號", BusinessHours: "16:00-23:00", Location: "後門",
		OpeningHours: []OpeningHours{{Days: []int{0, 1, 2, 3, 4, 5, 6}, Slots: []TimeSlot{{Start: "16:00", End: "23:00"}}}},
	},
	{
		Name: "早安食堂", Address: "中壢區五權里二鄰37號", BusinessHours: "06:30-13:30", Location: "前門",
		OpeningHours: []OpeningHours{{Days: []int{1, 2, 3, 4, 5}, Slots: []TimeSlot{{Start: "06:30", End: "13:30"}}}},
	},
	{
		Name: "夜市牛排", Address: "中壢區中央西路二段120號", BusinessHours: "17:00-23:30", Location: "前門",
		OpeningHours: []OpeningHours{{Days: []int{2, 3, 4, 5, 6, 0}, Slots: []TimeSlot{{Start: "17:00", End: "23:30"}}}},
	},
}

// LoadRestaurants reads the optional data file; an empty path means the
// built-in list.
func LoadRestaurants(path string) ([]Restaurant, error) {
	if path == "" {
		return defaultRestaurants, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read restaurant data: %w", err)
	}
	var restaurants []Restaurant
	if err := yaml.Unmarshal(data, &restaurants); err != nil {
		return nil, fmt.Errorf("parse restaurant yaml: %w", err)
	}
	return restaurants, nil
}

// PickRestaurant picks a random restaurant at one of the wanted locations,
// optionally limited to ones open right now.
func PickRestaurant(restaurants []Restaurant, locations []string, onlyOpen bool, now time.Time) (*Restaurant, error) {
	wanted := make(map[string]bool, len(locations))
	for _, loc := range locations {
		wanted[loc] = true
	}

	var candidates []Restaurant
	for _, r := range restaurants {
		if len(wanted) > 0 && !wanted[r.Location] {
			continue
		}
		if onlyOpen && !isOpenAt(r, now) {
			continue
		}
		candidates = append(candidates, r)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("沒有符合條件的餐廳")
	}

	pick := candidates[rand.Intn(len(candidates))]
	return &pick, nil
}

func isOpenAt(r Restaurant, now time.Time) bool {
	day := int(now.Weekday()) // 0=Sunday, matches the data convention
	clock := now.Format("15:04")

	for _, schedule := range r.OpeningHours {
		dayMatches := false
		for _, d := range schedule.Days {
			if d == day {
				dayMatches = true
				break
			}
		}
		if !dayMatches {
			continue
		}
		for _, slot := range schedule.Slots {
			if slot.Start <= clock && clock <= slot.End {
				return true
			}
		}
	}
	return false
}
