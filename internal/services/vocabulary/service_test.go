package vocabulary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/vocabgrid/internal/model"
	"github.com/mcoot/vocabgrid/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New(testutil.NopLogger())
}

func (s *ServiceSuite) TestIsNotLoadedByDefault() {
	s.False(s.service.IsLoaded())
	s.Equal(0, s.service.WordCount())
	s.Empty(s.service.Entries())
}

func (s *ServiceSuite) TestLoadWords() {
	err := s.service.LoadWords([]string{"apple", "Banana", "cherry"})
	s.Require().NoError(err)

	s.True(s.service.IsLoaded())
	s.Equal(3, s.service.WordCount())

	entry, ok := s.service.Lookup("banana")
	s.True(ok)
	s.Equal("banana", entry.Spelling)
}

func (s *ServiceSuite) TestLoadSkipsInvalidEntries() {
	err := s.service.LoadWords([]string{"at", "cat", "c4t", "two words", "", "cat"})
	s.Require().NoError(err)

	s.Equal([]model.VocabEntry{{ID: "cat", Spelling: "cat"}}, s.service.Entries())
}

func (s *ServiceSuite) TestLoadNothingValid() {
	err := s.service.LoadWords([]string{"a", "ab"})
	s.ErrorIs(err, model.ErrVocabularyNotLoaded)
	s.False(s.service.IsLoaded())
}

func (s *ServiceSuite) TestLoadFromReaderWithIDs() {
	input := `# animals
w1,cat
w2, Tiger

horse
`
	err := s.service.LoadFromReader(strings.NewReader(input))
	s.Require().NoError(err)

	s.Equal([]model.VocabEntry{
		{ID: "w1", Spelling: "cat"},
		{ID: "w2", Spelling: "tiger"},
		{ID: "horse", Spelling: "horse"},
	}, s.service.Entries())
}

func (s *ServiceSuite) TestLoadFromFile() {
	path := filepath.Join(s.T().TempDir(), "words.txt")
	s.Require().NoError(os.WriteFile(path, []byte("cat\ndog\n"), 0o600))

	err := s.service.LoadFromFile(path)
	s.Require().NoError(err)
	s.Equal(2, s.service.WordCount())
}

func (s *ServiceSuite) TestLoadFromMissingFile() {
	err := s.service.LoadFromFile(filepath.Join(s.T().TempDir(), "missing.txt"))
	s.Error(err)
}

func (s *ServiceSuite) TestReloadReplacesEntries() {
	_ = s.service.LoadWords([]string{"cat", "dog"})
	_ = s.service.LoadWords([]string{"tea"})

	s.Equal(1, s.service.WordCount())
	_, ok := s.service.Lookup("cat")
	s.False(ok)
}

func (s *ServiceSuite) TestFilter() {
	_ = s.service.LoadWords([]string{"cat", "dog", "tea"})

	result := s.service.Filter([]model.VocabID{"tea", "missing", "cat"})
	s.Equal([]model.VocabEntry{{ID: "tea", Spelling: "tea"}, {ID: "cat", Spelling: "cat"}}, result)
}

func (s *ServiceSuite) TestEntriesReturnsCopy() {
	_ = s.service.LoadWords([]string{"cat"})
	entries := s.service.Entries()
	entries[0].Spelling = "dog"

	entry, _ := s.service.Lookup("cat")
	s.Equal("cat", entry.Spelling)
}
