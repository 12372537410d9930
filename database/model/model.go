// Package model defines the persistent entities of GeriSafe: clinician
// accounts, the medication catalog and per-subject clinical notes.
package model

import "time"

// User is a registered clinician. Rows are created only after the
// registration email has been confirmed.
type User struct {
	Id         int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string `json:"name" form:"name"`
	Profession string `json:"profession" form:"profession"`
	Department string `json:"department" form:"department"`
	Email      string `json:"email" form:"email" gorm:"uniqueIndex"`
	Password   string `json:"-"`
}

// DrugClass groups medications sharing a pharmacological category. The
// criteria fields hold externally authored geriatric-safety guidance and
// are treated as opaque text. Rows are seeded, never edited in the app.
type DrugClass struct {
	Id                 int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name               string `json:"name" gorm:"uniqueIndex"`
	BeersCriteria      string `json:"beersCriteria"`
	StoppStartCriteria string `json:"stoppStartCriteria"`
	Drugs              []Drug `json:"drugs" gorm:"foreignKey:DrugClassId;references:Id"`
	Notes              []Note `json:"notes" gorm:"foreignKey:DrugClassId;references:Id"`
}

// Drug is a single medication belonging to one DrugClass. Name doubles as
// the URL key.
type Drug struct {
	Id                 int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name               string `json:"name" gorm:"uniqueIndex"`
	BeersCriteria      string `json:"beersCriteria"`
	StoppStartCriteria string `json:"stoppStartCriteria"`
	DrugClassId        int    `json:"drugClassId"`
	Notes              []Note `json:"notes" gorm:"foreignKey:DrugId;references:Id"`
}

// Note is one clinician's annotation on a drug or a drug class. Exactly one
// of DrugId/DrugClassId is set. The composite unique indexes back the
// atomic upsert: SQLite treats NULL as distinct in unique indexes, so each
// index only constrains notes of its own subject kind.
type Note struct {
	Id          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Content     string    `json:"content" form:"content"`
	DatePosted  time.Time `json:"datePosted"`
	UserId      int       `json:"userId" gorm:"uniqueIndex:idx_notes_user_drug;uniqueIndex:idx_notes_user_drugclass"`
	User        User      `json:"user" gorm:"foreignKey:UserId;references:Id"`
	DrugId      *int      `json:"drugId" gorm:"uniqueIndex:idx_notes_user_drug"`
	DrugClassId *int      `json:"drugClassId" gorm:"uniqueIndex:idx_notes_user_drugclass"`
}

// Setting is a key/value row for runtime-editable server configuration.
type Setting struct {
	Id    int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" form:"key"`
	Value string `json:"value" form:"value"`
}
