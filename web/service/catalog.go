package service

import (
	"gerisafe/database"
	"gerisafe/database/model"

	"gorm.io/gorm"
)

// URL category segments for the two note-bearing subject kinds.
const (
	CategoryDrugClass   = "drugclass"
	CategoryMedications = "medications"
)

// Subject is a medication or a drug class, resolved once at the router
// boundary. Exactly one field is set.
type Subject struct {
	Drug      *model.Drug
	DrugClass *model.DrugClass
}

func (s *Subject) Name() string {
	if s.Drug != nil {
		return s.Drug.Name
	}
	return s.DrugClass.Name
}

// Category returns the URL segment the subject was resolved from.
func (s *Subject) Category() string {
	if s.Drug != nil {
		return CategoryMedications
	}
	return CategoryDrugClass
}

// CatalogService serves the read-only medication catalog.
type CatalogService struct{}

func (s *CatalogService) AllDrugClasses() ([]*model.DrugClass, error) {
	db := database.GetDB()
	classes := make([]*model.DrugClass, 0)
	err := db.Model(model.DrugClass{}).Find(&classes).Error
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (s *CatalogService) AllDrugs() ([]*model.Drug, error) {
	db := database.GetDB()
	drugs := make([]*model.Drug, 0)
	err := db.Model(model.Drug{}).Find(&drugs).Error
	if err != nil {
		return nil, err
	}
	return drugs, nil
}

// GetDrugClassByName looks up a class by its URL key with member drugs
// preloaded. Returns gorm.ErrRecordNotFound for an unknown name.
func (s *CatalogService) GetDrugClassByName(name string) (*model.DrugClass, error) {
	db := database.GetDB()
	drugClass := &model.DrugClass{}
	err := db.Model(model.DrugClass{}).
		Preload("Drugs").
		Where("name = ?", name).
		First(drugClass).
		Error
	if err != nil {
		return nil, err
	}
	return drugClass, nil
}

// GetDrugByName looks up a medication by its URL key and resolves its
// owning class with sibling drugs preloaded.
func (s *CatalogService) GetDrugByName(name string) (*model.Drug, *model.DrugClass, error) {
	db := database.GetDB()
	drug := &model.Drug{}
	err := db.Model(model.Drug{}).
		Where("name = ?", name).
		First(drug).
		Error
	if err != nil {
		return nil, nil, err
	}

	drugClass := &model.DrugClass{}
	err = db.Model(model.DrugClass{}).
		Preload("Drugs").
		Where("id = ?", drug.DrugClassId).
		First(drugClass).
		Error
	if err != nil {
		return nil, nil, err
	}
	return drug, drugClass, nil
}

// ResolveSubject maps a category/name URL pair to a Subject. Unknown
// categories and names both surface as gorm.ErrRecordNotFound so handlers
// render the same not-found page for either.
func (s *CatalogService) ResolveSubject(category, name string) (*Subject, error) {
	switch category {
	case CategoryDrugClass:
		drugClass, err := s.GetDrugClassByName(name)
		if err != nil {
			return nil, err
		}
		return &Subject{DrugClass: drugClass}, nil
	case CategoryMedications:
		drug, _, err := s.GetDrugByName(name)
		if err != nil {
			return nil, err
		}
		return &Subject{Drug: drug}, nil
	default:
		return nil, gorm.ErrRecordNotFound
	}
}
