package scrape

import (
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"github.com/openswoop/cgpa/pkg/grade"
	"github.com/openswoop/cgpa/pkg/session"
	"github.com/pkg/errors"
)

var ErrNoTranscript = errors.New("no transcript rows found")

// Transcript reads a grade table with the columns
// Semester | Subject | Credits | Grade | Marks. Rows are grouped by their
// semester label in the order the labels first appear.
type Transcript struct {
	url       string
	labels    map[string]int
	semesters []session.Semester
	subjects  int
}

func NewTranscript(url string) *Transcript {
	return &Transcript{url: url}
}

func (t *Transcript) Urls() []string {
	if t.url == "" {
		return nil
	}
	return []string{t.url}
}

func (t *Transcript) UnmarshalDoc(doc *goquery.Document) error {
	table := doc.Find("table.transcript").First()
	if table.Size() == 0 {
		table = doc.Find("table").First()
	}

	t.labels = make(map[string]int)
	t.semesters = nil
	t.subjects = 0

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		// Header rows
		if row.Find("th").Size() > 0 {
			return
		}
		cells := row.Find("td")
		if cells.Size() < 2 {
			return
		}
		text := func(i int) string {
			return strings.TrimSpace(cells.Eq(i).Text())
		}

		label := text(0)
		i, ok := t.labels[label]
		if !ok {
			i = len(t.semesters)
			t.labels[label] = i
			t.semesters = append(t.semesters, session.Semester{ID: i + 1, Subjects: []session.Subject{}})
		}

		t.subjects++
		t.semesters[i].Subjects = append(t.semesters[i].Subjects, session.Subject{
			ID:      t.subjects,
			Name:    text(1),
			Credits: grade.ParseNumber(text(2)),
			Grade:   grade.Normalize(text(3)),
			Marks:   grade.ParseNumber(text(4)),
		})
	})

	if len(t.semesters) == 0 {
		return ErrNoTranscript
	}
	return nil
}

func (t *Transcript) Session() session.Session {
	return session.New(t.semesters)
}

// FromFile parses a transcript saved as an HTML file.
func FromFile(path string) (session.Session, error) {
	file, err := os.Open(path)
	if err != nil {
		return session.Session{}, err
	}
	defer file.Close()

	doc, err := goquery.NewDocumentFromReader(file)
	if err != nil {
		return session.Session{}, errors.Wrap(err, "parsing html")
	}
	t := NewTranscript("")
	if err := t.UnmarshalDoc(doc); err != nil {
		return session.Session{}, errors.Wrap(err, path)
	}
	return t.Session(), nil
}

// FromURL fetches a transcript page with the collector.
func FromURL(c *colly.Collector, url string) (session.Session, error) {
	t := NewTranscript(url)
	if err := Fetch(c, t); err != nil {
		return session.Session{}, errors.Wrap(err, url)
	}
	return t.Session(), nil
}
