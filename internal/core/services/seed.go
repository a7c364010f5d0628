package services

import (
	"time"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

// seedRecords is the built-in sample corpus used when no source yields data.
var seedRecords = []domain.MedicineRecord{
	{
		Key: "Panadol", BrandName: "Panadol", GenericName: "Paracetamol",
		Composition: "Paracetamol 500mg", Uses: "Pain relief, fever reduction",
		SideEffects: "Nausea, rash (rare)", Manufacturer: "GSK Pakistan",
	},
	{
		Key: "Brufen", BrandName: "Brufen", GenericName: "Ibuprofen",
		Composition: "Ibuprofen 400mg", Uses: "Pain relief, inflammation",
		SideEffects: "Stomach upset, dizziness", Manufacturer: "Abbott Pakistan",
	},
	{
		Key: "Flagyl", BrandName: "Flagyl", GenericName: "Metronidazole",
		Composition: "Metronidazole 400mg", Uses: "Bacterial infections, parasitic infections",
		SideEffects: "Nausea, metallic taste", Manufacturer: "Sanofi Pakistan",
	},
	{
		Key: "Augmentin", BrandName: "Augmentin", GenericName: "Amoxicillin + Clavulanic Acid",
		Composition: "Amoxicillin 875mg + Clavulanic Acid 125mg", Uses: "Bacterial infections",
		SideEffects: "Diarrhea, nausea", Manufacturer: "GSK Pakistan",
	},
	{
		Key: "Disprin", BrandName: "Disprin", GenericName: "Aspirin",
		Composition: "Aspirin 300mg", Uses: "Pain relief, fever, blood thinning",
		SideEffects: "Stomach irritation, bleeding risk", Manufacturer: "Bayer Pakistan",
	},
	{
		Key: "Calpol", BrandName: "Calpol", GenericName: "Paracetamol",
		Composition: "Paracetamol 120mg/5ml", Uses: "Pain and fever in children",
		SideEffects: "Nausea (rare)", Manufacturer: "GSK Pakistan",
	},
	{
		Key: "Ponstan", BrandName: "Ponstan", GenericName: "Mefenamic Acid",
		Composition: "Mefenamic Acid 500mg", Uses: "Pain relief, menstrual pain",
		SideEffects: "Stomach upset, dizziness", Manufacturer: "Pfizer Pakistan",
	},
	{
		Key: "Arinac", BrandName: "Arinac", GenericName: "Paracetamol + Chlorpheniramine",
		Composition: "Paracetamol 500mg + Chlorpheniramine 2mg", Uses: "Cold, flu, fever, allergies",
		SideEffects: "Drowsiness, dry mouth", Manufacturer: "Hilton Pharma Pakistan",
	},
}

// SeedCorpus returns a fresh copy of the sample corpus.
func SeedCorpus(at time.Time) *domain.Corpus {
	medicines := make([]domain.MedicineRecord, len(seedRecords))
	copy(medicines, seedRecords)
	return &domain.Corpus{
		Medicines:  medicines,
		NameColumn: string(domain.FieldBrandName),
		Seeded:     true,
		LoadedAt:   at,
	}
}
