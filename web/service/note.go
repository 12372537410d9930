package service

import (
	"errors"
	"time"

	"gerisafe/database"
	"gerisafe/database/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NoteService manages the shared note board attached to each catalog
// subject: every authenticated clinician sees all notes on a subject, and
// each clinician holds at most one note per subject.
type NoteService struct{}

// subjectColumns returns the note row's subject foreign key and the unique
// index columns that guard the upsert for this subject kind.
func subjectColumns(subject *Subject) (note model.Note, conflict []clause.Column) {
	if subject.Drug != nil {
		note.DrugId = &subject.Drug.Id
		conflict = []clause.Column{{Name: "user_id"}, {Name: "drug_id"}}
		return note, conflict
	}
	note.DrugClassId = &subject.DrugClass.Id
	conflict = []clause.Column{{Name: "user_id"}, {Name: "drug_class_id"}}
	return note, conflict
}

// NotesForSubject returns every clinician's note on the subject in storage
// order, with authors preloaded for display.
func (s *NoteService) NotesForSubject(subject *Subject) ([]*model.Note, error) {
	db := database.GetDB()
	notes := make([]*model.Note, 0)
	query := db.Model(model.Note{}).Preload("User")
	if subject.Drug != nil {
		query = query.Where("drug_id = ?", subject.Drug.Id)
	} else {
		query = query.Where("drug_class_id = ?", subject.DrugClass.Id)
	}
	err := query.Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// NoteForUser returns the clinician's own note on the subject, or nil when
// none exists yet.
func (s *NoteService) NoteForUser(userId int, subject *Subject) (*model.Note, error) {
	db := database.GetDB()
	note := &model.Note{}
	query := db.Model(model.Note{}).Where("user_id = ?", userId)
	if subject.Drug != nil {
		query = query.Where("drug_id = ?", subject.Drug.Id)
	} else {
		query = query.Where("drug_class_id = ?", subject.DrugClass.Id)
	}
	err := query.First(note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return note, nil
}

// UpsertNote creates or replaces the clinician's note on the subject as a
// single conflict-keyed insert, so concurrent submissions cannot produce a
// second row for the same (user, subject) pair. Returns whether a new note
// was created rather than an existing one updated.
func (s *NoteService) UpsertNote(userId int, subject *Subject, content string) (bool, error) {
	existing, err := s.NoteForUser(userId, subject)
	if err != nil {
		return false, err
	}

	note, conflict := subjectColumns(subject)
	note.UserId = userId
	note.Content = content
	note.DatePosted = time.Now()

	db := database.GetDB()
	err = db.Clauses(clause.OnConflict{
		Columns:   conflict,
		DoUpdates: clause.AssignmentColumns([]string{"content", "date_posted"}),
	}).Create(&note).Error
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}
