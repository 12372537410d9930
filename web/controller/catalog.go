package controller

import (
	"gerisafe/database"
	"gerisafe/logger"
	"gerisafe/web/service"

	"github.com/gin-gonic/gin"
)

// CatalogController serves the public drug-class and medication pages.
type CatalogController struct {
	BaseController

	catalogService service.CatalogService
}

func NewCatalogController(g *gin.RouterGroup) *CatalogController {
	a := &CatalogController{}
	a.initRouter(g)
	return a
}

func (a *CatalogController) initRouter(g *gin.RouterGroup) {
	g.GET("/drugclass/", a.drugClasses)
	g.GET("/drugclass/:name/", a.showDrugClass)
	g.GET("/medications/", a.medications)
	g.GET("/medications/:name/", a.showMedication)
}

func (a *CatalogController) drugClasses(c *gin.Context) {
	classes, err := a.catalogService.AllDrugClasses()
	if err != nil {
		logger.Warning("list drug classes err:", err)
		ErrorPage(c)
		return
	}
	names := make([]string, 0, len(classes))
	for _, drugClass := range classes {
		names = append(names, drugClass.Name)
	}
	html(c, "medication_list.html", "Drug Classes", gin.H{
		"names":    names,
		"category": service.CategoryDrugClass,
	})
}

func (a *CatalogController) medications(c *gin.Context) {
	drugs, err := a.catalogService.AllDrugs()
	if err != nil {
		logger.Warning("list medications err:", err)
		ErrorPage(c)
		return
	}
	names := make([]string, 0, len(drugs))
	for _, drug := range drugs {
		names = append(names, drug.Name)
	}
	html(c, "medication_list.html", "Medications", gin.H{
		"names":    names,
		"category": service.CategoryMedications,
	})
}

func (a *CatalogController) showDrugClass(c *gin.Context) {
	name := c.Param("name")
	drugClass, err := a.catalogService.GetDrugClassByName(name)
	if err != nil {
		if !database.IsNotFound(err) {
			logger.Warning("show drug class err:", err)
		}
		ErrorPage(c)
		return
	}
	html(c, "drugclass.html", drugClass.Name, gin.H{
		"drug":       drugClass.Name,
		"beers":      drugClass.BeersCriteria,
		"stoppStart": drugClass.StoppStartCriteria,
		"listOfMeds": drugClass.Drugs,
		"category":   "Drug Class",
		"notesPath":  "/" + service.CategoryDrugClass + "/" + drugClass.Name,
	})
}

func (a *CatalogController) showMedication(c *gin.Context) {
	name := c.Param("name")
	drug, drugClass, err := a.catalogService.GetDrugByName(name)
	if err != nil {
		if !database.IsNotFound(err) {
			logger.Warning("show medication err:", err)
		}
		ErrorPage(c)
		return
	}
	html(c, "drugclass.html", drug.Name, gin.H{
		"drug":          drug.Name,
		"beers":         drug.BeersCriteria,
		"stoppStart":    drug.StoppStartCriteria,
		"listOfMeds":    drugClass.Drugs,
		"drugclassName": drugClass.Name,
		"category":      "Medication",
		"notesPath":     "/" + service.CategoryMedications + "/" + drug.Name,
	})
}
