// internal/nlu/extractor/extractor_test.go
package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-nlu/internal/common/logger"
	"inventory-nlu/internal/models"
	"inventory-nlu/internal/nlu/lexicon"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	return New(lexicon.Default(), DefaultWeights(), logger.NewTestLogger(t))
}

func TestExtractPrice(t *testing.T) {
	ext := newTestExtractor(t)

	tests := []struct {
		name     string
		text     string
		expected *float64
	}{
		{"rupee symbol", "price ₹299", f(299)},
		{"rupee symbol with space", "₹ 450", f(450)},
		{"rs prefix", "Rs. 150.50 only", f(150.50)},
		{"rupees suffix", "costs 350 rupees", f(350)},
		{"labeled price", "price: 200", f(200)},
		{"labeled cost", "cost = 99.99", f(99.99)},
		{"dollar", "$12.99 each", f(12.99)},
		{"zero rejected", "price: 0", nil},
		{"negative not matched", "price -50", nil},
		{"no price", "Atomic Habits by James Clear", nil},
		{"bare number ignored", "give me 5", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ext.ExtractPrice(tt.text)
			if tt.expected == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.InDelta(t, *tt.expected, *got, 0.001)
			}
		})
	}
}

func TestExtractQuantity(t *testing.T) {
	ext := newTestExtractor(t)

	tests := []struct {
		name     string
		text     string
		expected *int
	}{
		{"labeled qty", "qty 5", i(5)},
		{"labeled quantity", "quantity: 12", i(12)},
		{"copies suffix", "3 copies please", i(3)},
		{"books suffix", "ordered 10 books", i(10)},
		{"x notation", "Atomic Habits x3", i(3)},
		{"zero rejected", "qty 0", nil},
		{"no quantity", "Atomic Habits by James Clear", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ext.ExtractQuantity(tt.text)
			if tt.expected == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.expected, *got)
			}
		})
	}
}

func TestExtractLocation(t *testing.T) {
	ext := newTestExtractor(t)

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"labeled location", "location A-1", "A-1"},
		{"labeled shelf", "shelf: B2", "B2"},
		{"labeled section", "section C", "C"},
		{"prepositional", "put it at A-12", "A-12"},
		{"label beats preposition", "in D4, location A-1", "A-1"},
		{"condition phrase not a location", "in good condition", ""},
		{"stock phrase not a location", "books in stock", ""},
		{"no location", "Atomic Habits by James Clear", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ext.ExtractLocation(tt.text))
		})
	}
}

func TestExtractTitleAndAuthor(t *testing.T) {
	ext := newTestExtractor(t)

	tests := []struct {
		name           string
		text           string
		expectedTitle  string
		expectedAuthor string
	}{
		{
			name:           "labeled book with trailing fields",
			text:           "Add book: Atomic Habits by James Clear price ₹299 qty 5",
			expectedTitle:  "Atomic Habits",
			expectedAuthor: "James Clear",
		},
		{
			name:           "explicit title and author labels",
			text:           "title: Deep Work author: Cal Newport",
			expectedTitle:  "Deep Work",
			expectedAuthor: "Cal Newport",
		},
		{
			name:           "quoted title",
			text:           "'The Alchemist' by Paulo Coelho",
			expectedTitle:  "The Alchemist",
			expectedAuthor: "Paulo Coelho",
		},
		{
			name:           "bare add form",
			text:           "Add The Alchemist by Paulo Coelho",
			expectedTitle:  "The Alchemist",
			expectedAuthor: "Paulo Coelho",
		},
		{
			name:           "author clipped at comma",
			text:           "Sapiens by Yuval Noah Harari, hardcover",
			expectedTitle:  "Sapiens",
			expectedAuthor: "Yuval Noah Harari",
		},
		{
			name:           "author with initials",
			text:           "Add book: Harry Potter by J.K. Rowling",
			expectedTitle:  "Harry Potter",
			expectedAuthor: "J.K. Rowling",
		},
		{
			name:           "initials then comma clip",
			text:           "Add The Hobbit by J.R.R. Tolkien, first edition",
			expectedTitle:  "The Hobbit",
			expectedAuthor: "J.R.R. Tolkien",
		},
		{
			name:           "sentence period still clips",
			text:           "Sapiens by Yuval Noah Harari. Add it now",
			expectedTitle:  "Sapiens",
			expectedAuthor: "Yuval Noah Harari",
		},
		{
			name:           "author only",
			text:           "by Paulo Coelho",
			expectedTitle:  "",
			expectedAuthor: "Paulo Coelho",
		},
		{
			name:           "neither",
			text:           "hello there",
			expectedTitle:  "",
			expectedAuthor: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedTitle, ext.ExtractTitle(tt.text))
			assert.Equal(t, tt.expectedAuthor, ext.ExtractAuthor(tt.text))
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	ext := newTestExtractor(t)

	tests := []struct {
		name     string
		text     string
		expected models.Language
	}{
		{"english", "Atomic Habits", models.LanguageEnglish},
		{"kannada", "ಪುಸ್ತಕ ಸೇರಿಸಿ", models.LanguageKannada},
		{"mixed", "Add ಪುಸ್ತಕ now", models.LanguageMixed},
		{"digits only default to english", "12345", models.LanguageEnglish},
		{"empty", "", models.LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ext.DetectLanguage(tt.text))
		})
	}
}

func TestExtractBookInfo_Confidence(t *testing.T) {
	ext := newTestExtractor(t)

	t.Run("all fields", func(t *testing.T) {
		info := ext.ExtractBookInfo("Add book: Atomic Habits by James Clear price ₹299 qty 5 location A-1 condition new")
		assert.Equal(t, "Atomic Habits", info.Title)
		assert.Equal(t, "James Clear", info.Author)
		require.NotNil(t, info.Price)
		assert.InDelta(t, 299, *info.Price, 0.001)
		require.NotNil(t, info.Quantity)
		assert.Equal(t, 5, *info.Quantity)
		assert.Equal(t, "A-1", info.Location)
		assert.Equal(t, models.ConditionNew, info.Condition)
		assert.InDelta(t, 1.0, info.Confidence, 0.001)
		assert.True(t, info.IsValid())
	})

	t.Run("title and author only", func(t *testing.T) {
		info := ext.ExtractBookInfo("Add book: Atomic Habits by James Clear")
		assert.InDelta(t, 0.80, info.Confidence, 0.001)
		assert.True(t, info.IsValid())
	})

	t.Run("nothing extractable", func(t *testing.T) {
		info := ext.ExtractBookInfo("what a lovely day")
		assert.InDelta(t, 0.0, info.Confidence, 0.001)
		assert.False(t, info.IsValid())
	})
}

// Adding fields to a message never lowers the extraction confidence.
func TestExtractBookInfo_ConfidenceMonotonic(t *testing.T) {
	ext := newTestExtractor(t)

	messages := []string{
		"what a lovely day",
		"Add book: Atomic Habits",
		"Add book: Atomic Habits by James Clear",
		"Add book: Atomic Habits by James Clear price ₹299",
		"Add book: Atomic Habits by James Clear price ₹299 qty 5",
		"Add book: Atomic Habits by James Clear price ₹299 qty 5 location A-1",
		"Add book: Atomic Habits by James Clear price ₹299 qty 5 location A-1 condition new",
	}

	prev := -1.0
	for _, msg := range messages {
		conf := ext.ExtractBookInfo(msg).Confidence
		assert.GreaterOrEqual(t, conf, prev, "message: %s", msg)
		prev = conf
	}
}

func TestExtractSearchQuery(t *testing.T) {
	ext := newTestExtractor(t)

	tests := []struct {
		name       string
		message    string
		searchType models.SearchType
		expected   string
	}{
		{"author query", "Find books by James Clear", models.SearchByAuthor, "James Clear"},
		{"title query", "find books titled The Alchemist", models.SearchByTitle, "The Alchemist"},
		{"general residue", "search kannada novels", models.SearchGeneral, "kannada novels"},
		{"location query", "show books in A-1", models.SearchByLocation, "A-1"},
		{"empty residue falls back to original", "show me all the books", models.SearchGeneral, "show me all the books"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ext.ExtractSearchQuery(tt.message, tt.searchType))
		})
	}
}

func TestValidateBookInfo(t *testing.T) {
	ext := newTestExtractor(t)

	tests := []struct {
		name     string
		info     models.ExtractedBookInfo
		expected []string
	}{
		{
			name: "valid record",
			info: models.ExtractedBookInfo{
				Title: "Atomic Habits", Author: "James Clear",
				Price: f(299), Quantity: i(5), Condition: models.ConditionNew,
			},
			expected: nil,
		},
		{
			name:     "blank title and author",
			info:     models.ExtractedBookInfo{},
			expected: []string{"title is blank", "author is blank"},
		},
		{
			name: "non-positive price",
			info: models.ExtractedBookInfo{
				Title: "X Y", Author: "Z", Price: f(0),
			},
			expected: []string{"price must be greater than zero"},
		},
		{
			name: "non-positive quantity",
			info: models.ExtractedBookInfo{
				Title: "X Y", Author: "Z", Quantity: i(-2),
			},
			expected: []string{"quantity must be greater than zero"},
		},
		{
			name: "unknown condition",
			info: models.ExtractedBookInfo{
				Title: "X Y", Author: "Z", Condition: models.Condition("Fine"),
			},
			expected: []string{"condition must be one of New, Used, Damaged"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ext.ValidateBookInfo(tt.info))
		})
	}

	t.Run("every rule reported once", func(t *testing.T) {
		violations := ext.ValidateBookInfo(models.ExtractedBookInfo{
			Price:     f(-5),
			Quantity:  i(0),
			Condition: models.Condition("Shredded"),
		})
		assert.Len(t, violations, 5)
	})
}

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }
