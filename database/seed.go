package database

import (
	_ "embed"
	"log"

	"gerisafe/database/model"

	"github.com/goccy/go-json"
)

//go:embed seed.json
var seedCatalogJSON []byte

type seedDrug struct {
	Name               string `json:"name"`
	BeersCriteria      string `json:"beersCriteria"`
	StoppStartCriteria string `json:"stoppStartCriteria"`
}

type seedDrugClass struct {
	Name               string     `json:"name"`
	BeersCriteria      string     `json:"beersCriteria"`
	StoppStartCriteria string     `json:"stoppStartCriteria"`
	Drugs              []seedDrug `json:"drugs"`
}

// seedCatalog loads the embedded Beers/STOPP-START catalog fixture into an
// empty database. Runs only when the drug_classes table has no rows, so an
// externally managed catalog is never overwritten.
func seedCatalog() error {
	empty, err := isTableEmpty("drug_classes")
	if err != nil {
		log.Printf("Error checking if drug_classes table is empty: %v", err)
		return err
	}
	if !empty {
		return nil
	}

	var classes []seedDrugClass
	if err := json.Unmarshal(seedCatalogJSON, &classes); err != nil {
		return err
	}

	for _, sc := range classes {
		drugClass := &model.DrugClass{
			Name:               sc.Name,
			BeersCriteria:      sc.BeersCriteria,
			StoppStartCriteria: sc.StoppStartCriteria,
		}
		if err := db.Create(drugClass).Error; err != nil {
			return err
		}
		for _, sd := range sc.Drugs {
			drug := &model.Drug{
				Name:               sd.Name,
				BeersCriteria:      sd.BeersCriteria,
				StoppStartCriteria: sd.StoppStartCriteria,
				DrugClassId:        drugClass.Id,
			}
			if err := db.Create(drug).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
