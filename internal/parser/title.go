package parser

import (
	"regexp"
	"strings"
)

// 合集相关的噪音模式，按出现频率排列
var collectionNoise = []*regexp.Regexp{
	// 完整的合集标识
	regexp.MustCompile(`【(合集|系列|全集|连载)】`),
	regexp.MustCompile(`[（(](合集|系列|全集|连载)[）)]`),
	regexp.MustCompile(`(合集|系列|全集|连载)[：:]\s*`),

	// 集数标识
	regexp.MustCompile(`第\d+[集期章]?[部分]*[：:]?\s*`),

	// P 系列（B站特有）与英文集数标识
	regexp.MustCompile(`^[Pp]\d+[：:\s]*`),
	regexp.MustCompile(`^\d+[Pp][：:\s]*`),
	regexp.MustCompile(`(?i)^ep\.?\s*\d+[：:\s]*`),
	regexp.MustCompile(`(?i)^episode\s*\d+[：:\s]*`),
	regexp.MustCompile(`(?i)season\s*\d+[：:\s]*`),

	// 开头的编号 "01." / 【1】 / [2]
	regexp.MustCompile(`^\d+[\.．][：:\s]*`),
	regexp.MustCompile(`^【\d+】[：:\s]*`),
	regexp.MustCompile(`^\[\d+\][：:\s]*`),
}

// CleanCollectionTitle 去掉合集类标题里的集数编号和【合集】之类的噪音，
// 用于把合集级标题回填到缺失标题的条目上
func CleanCollectionTitle(raw string) string {
	if raw == "" {
		return raw
	}

	s := raw
	for _, re := range collectionNoise {
		s = re.ReplaceAllString(s, "")
	}

	// Cleanup: collapse spaces, strip leading/trailing separators
	s = strings.TrimSpace(regexp.MustCompile(`\s+`).ReplaceAllString(s, " "))
	s = strings.Trim(s, "-—·| ")

	if s == "" {
		return raw // Fallback if we stripped everything
	}
	return s
}
