package integrate

import "github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/models"

// BuildDetail emits one provenance row per raw record in the group,
// winners and losers alike, linking it to the group's canonical book.
// It only produces rows; neither the records nor the book are touched.
func BuildDetail(g Group, winners []bool, ingestedAt string) []models.ProvenanceDetail {
	rows := make([]models.ProvenanceDetail, 0, len(g.Records))
	for i, rec := range g.Records {
		rows = append(rows, models.ProvenanceDetail{
			BookID:       g.Key,
			CandidateKey: rec.CandidateKey,
			Source:       string(rec.Source),
			SourceID:     rec.SourceID,
			SourceFile:   rec.SourceFile,
			RowNumber:    rec.RowNumber,

			Title:           rec.Title,
			TitleNormalized: rec.TitleNormalized,
			PrimaryAuthor:   rec.PrimaryAuthor,
			Authors:         rec.Authors,
			Publisher:       rec.Publisher,
			PubDateRaw:      rec.PubDateRaw,
			PubDate:         rec.PubDate,
			LanguageRaw:     rec.LanguageRaw,
			Language:        rec.Language,
			ISBN10:          rec.ISBN10,
			ISBN13:          rec.ISBN13,
			Categories:      rec.Categories,
			Price:           rec.Price,
			Currency:        rec.Currency,
			Rating:          rec.Rating,
			RatingsCount:    rec.RatingsCount,

			ValidISBN13:   rec.ValidISBN13,
			ValidPubDate:  rec.ValidPubDate,
			ValidLanguage: rec.ValidLanguage,
			ValidCurrency: rec.ValidCurrency,

			Winner:     winners[i],
			IngestedAt: ingestedAt,
		})
	}
	return rows
}
