package testutils

import (
	"github.com/kmclassics/kmclassics/pkg/models"
)

// FixtureBookID is the book most fixtures hang off.
const FixtureBookID = "MC_00008"

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// FixtureBooks returns the sample book records.
func FixtureBooks() []*models.Book {
	return []*models.Book{
		{
			BookID:       FixtureBookID,
			BookNum:      8,
			Title:        "동의보감",
			TitleChinese: strPtr("東醫寶鑑"),
			Author:       strPtr("허준"),
			PublishYear:  strPtr("1613"),
			Abstract:     strPtr("조선 중기의 의서"),
			Keywords:     strPtr("의학, 한의학"),
			Similars:     strPtr("MC_00009"),
			Volumes:      intPtr(2),
		},
		{
			BookID:     "MC_00009",
			BookNum:    9,
			Title:      "향약집성방",
			Author:     strPtr("유효통"),
			Translator: strPtr("권채"),
			Keywords:   strPtr("향약"),
			Volumes:    intPtr(1),
		},
		{
			BookID:   "MC_00010",
			BookNum:  10,
			Title:    "의방유취",
			Abstract: strPtr("100%_완역 의서"),
		},
	}
}

// FixtureContents returns the content tree of the fixture books.
//
// Volume 1 of MC_00008:
//
//	1  A  1            卷一
//	2  X  1   path 1   leaf under a division
//	3  B  2   path 1   hidden by top-level flattening
//	4  X  1   path 1,2
//	5  A  2            division without children
//	6  O  3            section
//	7  S  1   path 3
//	8  X  1   path 3,1
//	9  P  2   path 3   image block
//	10 Z  4            terminal marker
//
// Volume 2 has a single division with one leaf. MC_00009 reuses content ids
// to show that books are independent.
func FixtureContents() []*models.Content {
	b := FixtureBookID
	return []*models.Content{
		{BookID: b, ContentID: 1, VolumeNum: 1, SectID: "1", Path: "", Level: models.LevelDivision, SectNum: "1", Chinese: "卷一", Korean: "권1"},
		{BookID: b, ContentID: 2, VolumeNum: 1, SectID: "1", Path: "1", Level: models.LevelLeaf, Depth: "1", SectNum: "1-1", Chinese: "天地之[道]{주석: 길}", Korean: "하늘과 땅의 도"},
		{BookID: b, ContentID: 3, VolumeNum: 1, SectID: "2", Path: "1", Level: models.LevelSubdivision, Depth: "1", SectNum: "1-2", Chinese: "內景篇"},
		{BookID: b, ContentID: 4, VolumeNum: 1, SectID: "1", Path: "1,2", Level: models.LevelLeaf, Depth: "11", SectNum: "1-2", Chinese: "身形"},
		{BookID: b, ContentID: 5, VolumeNum: 1, SectID: "2", Path: "", Level: models.LevelDivision, SectNum: "2", Chinese: "卷二"},
		{BookID: b, ContentID: 6, VolumeNum: 1, SectID: "3", Path: "", Level: models.LevelSection, SectNum: "3", Chinese: "集例", Korean: "집례"},
		{BookID: b, ContentID: 7, VolumeNum: 1, SectID: "1", Path: "3", Level: models.LevelSubsection, Depth: "1", SectNum: "3-1", Chinese: "~小字~註"},
		{BookID: b, ContentID: 8, VolumeNum: 1, SectID: "1", Path: "3,1", Level: models.LevelLeaf, Depth: "11", SectNum: "3-1", Chinese: "[뜻]{주석: 설명}", Korean: "뜻", English: "meaning"},
		{BookID: b, ContentID: 9, VolumeNum: 1, SectID: "2", Path: "3", Level: models.LevelImage, Depth: "1", SectNum: "3", Image: "![身形藏府圖](12)"},
		{BookID: b, ContentID: 10, VolumeNum: 1, SectID: "4", Path: "", Level: models.LevelTerminal, SectNum: "4"},
		{BookID: b, ContentID: 11, VolumeNum: 2, SectID: "1", Path: "", Level: models.LevelDivision, SectNum: "1", Chinese: "卷三"},
		{BookID: b, ContentID: 12, VolumeNum: 2, SectID: "1", Path: "1", Level: models.LevelLeaf, Depth: "1", SectNum: "1-1", Chinese: "湯液篇"},
		{BookID: "MC_00009", ContentID: 1, VolumeNum: 1, SectID: "1", Path: "", Level: models.LevelDivision, SectNum: "1", Chinese: "鄕藥"},
	}
}
