// Package category implements the topic tagging rules for diary entries:
// hashtag extraction and an ordered keyword table. Precedence between the
// two is decided by the analyzer service, not here.
package category

import (
	"regexp"
	"strings"
)

// Fallback is assigned when neither a hashtag nor a keyword matches.
const Fallback = "기타"

// \w would be ASCII-only in Go, so hashtags use an explicit Unicode class
// to keep Korean tags like #피곤함 working.
var hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

type bucket struct {
	name     string
	keywords []string
}

// table is iterated in order; the first keyword found as a substring wins.
// Matching is case-sensitive.
var table = []bucket{
	{"업무", []string{"회사", "업무", "프로젝트", "야근", "회의"}},
	{"학업", []string{"공부", "과제", "시험", "학교", "강의", "지식", "습득"}},
	{"관계", []string{"친구", "가족", "연인", "만남", "대화"}},
	{"건강", []string{"운동", "다이어트", "병원", "건강", "피곤"}},
	{"여행", []string{"여행", "휴가", "비행기", "해외", "숙소"}},
	{"일상", []string{"일상", "하루", "오늘", "점심", "저녁"}},
	{"음식", []string{"음식", "요리", "맛집", "먹방", "카페"}},
}

// FromHashtag returns the first #token in the text, verbatim and without
// the leading #. The tag is not validated against the keyword table.
func FromHashtag(text string) (string, bool) {
	match := hashtagPattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// FromKeywords scans the keyword table in order and returns the first
// category whose keyword appears in the text, along with the matched
// keyword.
func FromKeywords(text string) (name, keyword string, ok bool) {
	for _, b := range table {
		for _, kw := range b.keywords {
			if strings.Contains(text, kw) {
				return b.name, kw, true
			}
		}
	}
	return "", "", false
}
