// normalizer приводит «сырые» записи новостей разных ревизий поискового API
// к каноническому models.Article.
//
// Разрешение полей задаётся таблицей известных путей (по убыванию приоритета),
// первое непустое строковое значение выигрывает. Значения неверного JSON-типа
// считаются отсутствующими.
package normalizer

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/BoalRolo/newsdotai/internal/models"
)

// Значения по умолчанию для отсутствующих полей.
const (
	DefaultTitle       = "No title"
	DefaultURL         = "#"
	DefaultSourceName  = "Unknown Source"
	DefaultDescription = "No description available"

	InvalidTitle       = "Invalid article"
	InvalidDescription = "Invalid article data"
)

// TimeLayout — формат PublishedAt после нормализации (ISO-8601, UTC, миллисекунды).
// Строки этого формата корректно сравниваются лексикографически.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// path — путь к значению внутри JSON-объекта.
type path []string

// Известные формы записей: NewsData.io (link, source_name, image_url, pubDate),
// NewsAPI-подобные (url, source.name, image, publishedAt) и собственный канонический вид.
var (
	titleKeys       = []path{{"title"}}
	urlKeys         = []path{{"link"}, {"url"}}
	publishedKeys   = []path{{"publishedAt"}, {"pubDate"}}
	sourceNameKeys  = []path{{"source_name"}, {"source", "name"}}
	sourceURLKeys   = []path{{"source_url"}, {"source", "url"}}
	descriptionKeys = []path{{"description"}, {"content"}}
	imageKeys       = []path{{"image_url"}, {"image"}, {"imageUrl"}}

	categoryKeys = []path{{"category"}}
	keywordsKeys = []path{{"keywords"}}
	languageKeys = []path{{"language"}}
	countryKeys  = []path{{"country"}}
)

// recognized — ключи верхнего уровня, по которым запись считается новостью.
var recognized = func() map[string]struct{} {
	out := make(map[string]struct{})
	groups := [][]path{
		titleKeys, urlKeys, publishedKeys, sourceNameKeys, sourceURLKeys,
		descriptionKeys, imageKeys, categoryKeys, keywordsKeys, languageKeys, countryKeys,
	}

	for _, group := range groups {
		for _, p := range group {
			out[p[0]] = struct{}{}
		}
	}

	return out
}()

// pubLayouts — форматы дат, которые встречаются у источников.
var pubLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05", // NewsData.io, UTC без зоны
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
}

// record — JSON-объект с отложенным разбором значений.
type record map[string]json.RawMessage

// Normalize приводит одну сырую запись к models.Article. Никогда не паникует.
//
// Не-объект (null, массив, скаляр, битый JSON) или объект без единого
// известного ключа превращается в статью-заглушку Invalid().
func Normalize(raw json.RawMessage, now time.Time) models.Article {
	rec, ok := parseRecord(raw)
	if !ok || !rec.hasRecognized() {
		return Invalid(now)
	}

	art := models.Article{
		Title:       rec.first(titleKeys, DefaultTitle),
		Description: rec.first(descriptionKeys, DefaultDescription),
		URL:         rec.first(urlKeys, DefaultURL),
		ImageURL:    rec.first(imageKeys, ""),
		Source: models.Source{
			Name: rec.first(sourceNameKeys, DefaultSourceName),
			URL:  rec.first(sourceURLKeys, ""),
		},
		Category: rec.list(categoryKeys),
		Keywords: rec.list(keywordsKeys),
		Language: rec.first(languageKeys, ""),
		Country:  rec.list(countryKeys),
	}

	if pub, ok := rec.lookup(publishedKeys); ok {
		art.PublishedAt = canonicalTime(pub)
	} else {
		art.PublishedAt = FormatTime(now)
	}

	return art
}

// NormalizeAll нормализует пачку записей с общим моментом now; порядок сохраняется.
func NormalizeAll(raws []json.RawMessage, now time.Time) []models.Article {
	out := make([]models.Article, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw, now))
	}

	return out
}

// Invalid возвращает статью-заглушку для неразборчивых данных.
func Invalid(now time.Time) models.Article {
	return models.Article{
		Title:       InvalidTitle,
		Description: InvalidDescription,
		URL:         DefaultURL,
		PublishedAt: FormatTime(now),
		Source:      models.Source{Name: DefaultSourceName},
	}
}

// FormatTime форматирует момент в канонический вид PublishedAt.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// canonicalTime переводит известные форматы дат в TimeLayout,
// неизвестные возвращает как есть.
func canonicalTime(value string) string {
	for _, layout := range pubLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return FormatTime(t)
		}
	}

	return value
}

func parseRecord(raw json.RawMessage) (record, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	var rec record
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return nil, false
	}

	return rec, true
}

func (r record) hasRecognized() bool {
	for key := range r {
		if _, ok := recognized[key]; ok {
			return true
		}
	}

	return false
}

// first возвращает первое непустое значение по списку путей или def.
func (r record) first(paths []path, def string) string {
	if v, ok := r.lookup(paths); ok {
		return v
	}

	return def
}

func (r record) lookup(paths []path) (string, bool) {
	for _, p := range paths {
		if v, ok := r.str(p); ok {
			return v, true
		}
	}

	return "", false
}

// str достаёт непустую строку по пути; вложенные объекты разбираются по месту.
func (r record) str(p path) (string, bool) {
	raw, ok := r.at(p)
	if !ok {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}

	s = strings.TrimSpace(s)

	return s, s != ""
}

func (r record) at(p path) (json.RawMessage, bool) {
	cur := r
	for i, key := range p {
		raw, ok := cur[key]
		if !ok {
			return nil, false
		}

		if i == len(p)-1 {
			return raw, true
		}

		next, ok := parseRecord(raw)
		if !ok {
			return nil, false
		}
		cur = next
	}

	return nil, false
}

// list принимает строку или массив строк; нестроковые элементы пропускаются.
func (r record) list(paths []path) []string {
	for _, p := range paths {
		raw, ok := r.at(p)
		if !ok {
			continue
		}

		var many []any
		if err := json.Unmarshal(raw, &many); err == nil {
			var out []string
			for _, item := range many {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, strings.TrimSpace(s))
				}
			}

			if len(out) > 0 {
				return out
			}

			continue
		}

		if s, ok := r.str(p); ok {
			return []string{s}
		}
	}

	return nil
}
