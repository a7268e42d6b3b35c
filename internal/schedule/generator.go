package schedule

import (
	"fmt"
	"time"

	"teambattles/internal/models"
)

// DaysPerBatch is how many consecutive calendar days one run covers.
const DaysPerBatch = 2

type slotTime struct {
	slot   models.Slot
	hour   int
	minute int
}

// Day and night slots start two minutes before the hour.
var slots = []slotTime{
	{slot: models.SlotDay, hour: 6, minute: 58},
	{slot: models.SlotNight, hour: 18, minute: 58},
}

// Generate returns the tournaments for today and the following day, numbered
// from nextDayNum. Both slots of one day share a sequence number.
func Generate(today time.Time, nextDayNum int) []models.Tournament {
	base := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	tournaments := make([]models.Tournament, 0, DaysPerBatch*len(slots))
	for offset := 0; offset < DaysPerBatch; offset++ {
		dayNum := nextDayNum + offset
		date := base.AddDate(0, 0, offset)

		for _, st := range slots {
			tournaments = append(tournaments, models.Tournament{
				DayNum:      dayNum,
				Slot:        st.slot,
				Name:        Name(st.slot, dayNum),
				Description: Description(st.slot, dayNum),
				StartsAt:    time.Date(date.Year(), date.Month(), date.Day(), st.hour, st.minute, 0, 0, time.UTC),
			})
		}
	}
	return tournaments
}

func Name(slot models.Slot, dayNum int) string {
	return fmt.Sprintf("LMAO %s '%d' Team Battle", slot, dayNum)
}

func Description(slot models.Slot, dayNum int) string {
	return fmt.Sprintf("Day %d of the LMAO team battles, %s session. Invited teams play for points; "+
		"every berserk counts. Good luck and have fun!", dayNum, slotLabel(slot))
}

func slotLabel(slot models.Slot) string {
	if slot == models.SlotNight {
		return "night"
	}
	return "day"
}

// MaxDayNum returns the highest sequence number in the batch, or 0 for an empty batch.
func MaxDayNum(tournaments []models.Tournament) int {
	highest := 0
	for _, t := range tournaments {
		if t.DayNum > highest {
			highest = t.DayNum
		}
	}
	return highest
}
