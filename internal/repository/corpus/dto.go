package corpus

import (
	"fmt"

	"github.com/kailas-cloud/guide/internal/domain/language"
	"github.com/kailas-cloud/guide/internal/domain/record"
)

// recordDTO is the on-disk and in-Redis shape of a record.
// yaml tags double as JSON keys: yaml.v3 reads JSON documents too.
type recordDTO struct {
	ID     string      `yaml:"id" json:"id"`
	Type   string      `yaml:"type" json:"type"`
	RU     *contentDTO `yaml:"ru" json:"ru"`
	EN     *contentDTO `yaml:"en" json:"en"`
	Images []imageDTO  `yaml:"images,omitempty" json:"images,omitempty"`
}

type contentDTO struct {
	Name        string   `yaml:"name" json:"name"`
	Tags        []string `yaml:"tags" json:"tags"`
	Description string   `yaml:"description" json:"description"`
	Knowledge   string   `yaml:"knowledge" json:"knowledge"`
}

type imageDTO struct {
	ID          string `yaml:"id" json:"id"`
	Description string `yaml:"description" json:"description"`
	ImageURL    string `yaml:"imageUrl" json:"imageUrl"`
	ImageHint   string `yaml:"imageHint" json:"imageHint"`
}

func (d *recordDTO) toDomain() (record.Record, error) {
	content := make(map[language.Language]record.LocalizedContent, 2)
	if d.RU != nil {
		content[language.Russian] = d.RU.toDomain()
	}
	if d.EN != nil {
		content[language.English] = d.EN.toDomain()
	}

	images := make([]record.Image, 0, len(d.Images))
	for _, img := range d.Images {
		images = append(images, record.Image{
			ID:          img.ID,
			URL:         img.ImageURL,
			Description: img.Description,
			Hint:        img.ImageHint,
		})
	}

	rec, err := record.New(d.ID, record.Type(d.Type), content, images)
	if err != nil {
		return record.Record{}, fmt.Errorf("record %q: %w", d.ID, err)
	}
	return rec, nil
}

func (c *contentDTO) toDomain() record.LocalizedContent {
	return record.LocalizedContent{
		Name:        c.Name,
		Tags:        c.Tags,
		Description: c.Description,
		Knowledge:   c.Knowledge,
	}
}

func fromDomain(rec *record.Record) (recordDTO, error) {
	ru, err := rec.Content(language.Russian)
	if err != nil {
		return recordDTO{}, err
	}
	en, err := rec.Content(language.English)
	if err != nil {
		return recordDTO{}, err
	}

	d := recordDTO{
		ID:   rec.ID(),
		Type: string(rec.Type()),
		RU:   contentFromDomain(ru),
		EN:   contentFromDomain(en),
	}
	for _, img := range rec.Images() {
		d.Images = append(d.Images, imageDTO{
			ID:          img.ID,
			Description: img.Description,
			ImageURL:    img.URL,
			ImageHint:   img.Hint,
		})
	}
	return d, nil
}

func contentFromDomain(c record.LocalizedContent) *contentDTO {
	return &contentDTO{
		Name:        c.Name,
		Tags:        c.Tags,
		Description: c.Description,
		Knowledge:   c.Knowledge,
	}
}

func toCorpus(dtos []recordDTO) (record.Corpus, error) {
	recs := make([]record.Record, 0, len(dtos))
	for i := range dtos {
		rec, err := dtos[i].toDomain()
		if err != nil {
			return record.Corpus{}, err
		}
		recs = append(recs, rec)
	}
	c, err := record.NewCorpus(recs...)
	if err != nil {
		return record.Corpus{}, fmt.Errorf("build corpus: %w", err)
	}
	return c, nil
}
