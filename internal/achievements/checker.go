// ABOUTME: Achievement checking and unlocking over a progress snapshot.
// ABOUTME: Predicate failures are isolated; re-awarding an ID is guarded.
package achievements

import (
	"time"

	"github.com/harperreed/arete/internal/models"
)

// Check returns the definitions not yet unlocked whose predicate is
// satisfied by the snapshot, in definition order. A panicking predicate is
// skipped and its ID reported; it never aborts the scan.
func Check(defs []Definition, snapshot Snapshot) (unlocked []Definition, skipped []string) {
	for _, def := range defs {
		if snapshot.Progress.HasAchievement(def.ID) {
			continue
		}
		ok, err := safeUnlock(def, snapshot)
		if err {
			skipped = append(skipped, def.ID)
			continue
		}
		if ok {
			unlocked = append(unlocked, def)
		}
	}
	return unlocked, skipped
}

// safeUnlock evaluates one predicate, converting a panic into a skip.
func safeUnlock(def Definition, snapshot Snapshot) (unlocked bool, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			unlocked = false
			failed = true
		}
	}()
	return def.Unlock(snapshot), false
}

// Award marks each definition as unlocked (status pending) on the progress
// document and returns the total XP reward. IDs already present are skipped,
// making Award idempotent; XP for an achievement is therefore never summed
// twice no matter which call site fires first.
func Award(p *models.UserProgress, defs []Definition) (totalXP int) {
	now := time.Now().UTC()
	for _, def := range defs {
		if p.HasAchievement(def.ID) {
			continue
		}
		p.Achievements[def.ID] = &models.AchievementState{
			Status:     models.AchievementPending,
			UnlockedAt: now,
		}
		totalXP += def.XPReward
	}
	return totalXP
}

// UnlockProgress reports percent-complete toward one achievement without
// performing any unlock. Unlocked achievements always report 100.
func UnlockProgress(def Definition, snapshot Snapshot) float64 {
	if snapshot.Progress.HasAchievement(def.ID) {
		return 100
	}
	if def.Progress != nil {
		return def.Progress(snapshot)
	}
	ok, failed := safeUnlock(def, snapshot)
	if !failed && ok {
		return 100
	}
	return 0
}

// ByID finds a definition in the catalog.
func ByID(defs []Definition, id string) (Definition, bool) {
	for _, def := range defs {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}
