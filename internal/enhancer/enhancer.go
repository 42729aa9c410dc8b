package enhancer

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	einoschema "github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"resume-insight-go/internal/logger"
	"resume-insight-go/internal/types"
)

const (
	maxKeyPhrases   = 20
	maxAchievements = 10
	llmCallTimeout  = 30 * time.Second
)

// achievementKeywords 成就描述的动词信号，句子需同时包含数字或%/$符号
var achievementKeywords = []string{
	"achieved", "accomplished", "awarded", "earned", "recognized",
	"improved", "increased", "decreased", "reduced", "saved",
	"generated", "developed", "created", "built", "established",
	"led", "managed", "directed", "spearheaded", "initiated",
}

// nameFalsePositives 人名候选中需要排除的机构类词
var nameFalsePositives = []string{"university", "college", "company"}

var (
	sentenceSplit = regexp.MustCompile(`[.!?\n]+`)
	monthYear     = regexp.MustCompile(`([A-Za-z]+\s+\d{4})`)
	jsonFence     = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")
)

// Enhancer 在规则解析结果之上叠加增强分析
// 实体与关键短语依赖语言模型；成就与经验级别为纯规则计算
// 模型不可用或响应无法解析时降级为仅规则输出，不让整次解析失败
type Enhancer struct {
	llmModel model.ToolCallingChatModel
	log      zerolog.Logger
}

// llmExtraction 语言模型返回的结构化抽取结果
type llmExtraction struct {
	Name       string          `json:"name"`
	Entities   types.EntitySet `json:"entities"`
	KeyPhrases []string        `json:"key_phrases"`
}

// New 创建增强器，llmModel为nil时仅产出规则分析结果
func New(llmModel model.ToolCallingChatModel) *Enhancer {
	return &Enhancer{
		llmModel: llmModel,
		log:      logger.Logger.With().Str("component", "enhancer").Logger(),
	}
}

// Enhance 生成增强分析记录
func (e *Enhancer) Enhance(ctx context.Context, text string, result *types.ParseResult) (*types.AdvancedInfo, error) {
	advanced := &types.AdvancedInfo{
		NameNLP:         result.Contact.Name,
		KeyPhrases:      []string{},
		Achievements:    e.ExtractAchievements(text),
		ExperienceLevel: e.AnalyzeExperienceLevel(result.Experience),
	}

	if e.llmModel == nil {
		return advanced, nil
	}

	extraction, err := e.extractWithModel(ctx, text)
	if err != nil {
		e.log.Warn().Err(err).Str("file", result.File).Msg("模型抽取失败，降级为纯规则增强")
		return advanced, nil
	}

	advanced.Entities = extraction.Entities
	advanced.KeyPhrases = dedupeHead(extraction.KeyPhrases, maxKeyPhrases)
	if name := validateName(extraction.Name); name != "" {
		advanced.NameNLP = name
	}
	return advanced, nil
}

// extractWithModel 调用语言模型抽取实体与关键短语
func (e *Enhancer) extractWithModel(ctx context.Context, text string) (*llmExtraction, error) {
	systemPrompt := `你是简历信息抽取引擎。从用户提供的简历文本中抽取以下内容，只输出一个JSON对象，不要输出任何解释:
{
  "name": "候选人姓名",
  "entities": {
    "persons": [], "organizations": [], "locations": [],
    "dates": [], "money": [], "percentages": []
  },
  "key_phrases": ["不超过20个关键短语"]
}`

	messages := []*einoschema.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: text},
	}

	callCtx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	defer cancel()

	response, err := e.llmModel.Generate(callCtx, messages)
	if err != nil {
		return nil, fmt.Errorf("模型调用失败: %w", err)
	}
	if response == nil || response.Content == "" {
		return nil, fmt.Errorf("模型返回空响应")
	}

	jsonStr := extractJSON(strings.TrimPrefix(response.Content, "\uFEFF"))
	if jsonStr == "" {
		return nil, fmt.Errorf("无法从模型响应中提取JSON")
	}

	var extraction llmExtraction
	if err := json.Unmarshal([]byte(jsonStr), &extraction); err != nil {
		return nil, fmt.Errorf("解析模型JSON失败: %w", err)
	}
	return &extraction, nil
}

// ExtractAchievements 抽取成就句：含成就动词且带有数字或%/$指标的句子，最多10条
func (e *Enhancer) ExtractAchievements(text string) []string {
	achievements := []string{}

	for _, sentence := range sentenceSplit.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		lower := strings.ToLower(sentence)
		hasKeyword := false
		for _, keyword := range achievementKeywords {
			if strings.Contains(lower, keyword) {
				hasKeyword = true
				break
			}
		}
		if !hasKeyword {
			continue
		}

		if !containsMetric(sentence) {
			continue
		}

		achievements = append(achievements, sentence)
		if len(achievements) >= maxAchievements {
			break
		}
	}
	return achievements
}

// containsMetric 判断句子是否包含数字或货币/百分比符号
func containsMetric(s string) bool {
	if strings.ContainsAny(s, "%$") {
		return true
	}
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// AnalyzeExperienceLevel 根据工作经历的总月数判定经验级别
// 阈值：<24月 Entry，<60月 Mid，<120月 Senior，其余 Expert/Executive
func (e *Enhancer) AnalyzeExperienceLevel(experience []types.ExperienceEntry) string {
	if len(experience) == 0 {
		return "Entry Level"
	}

	totalMonths := 0
	for _, exp := range experience {
		totalMonths += durationMonths(exp.Duration, time.Now())
	}

	switch {
	case totalMonths < 24:
		return "Entry Level"
	case totalMonths < 60:
		return "Mid Level"
	case totalMonths < 120:
		return "Senior Level"
	default:
		return "Expert/Executive Level"
	}
}

// durationMonths 计算一段时长描述覆盖的月数，无法解析时计0
// "present"/"current" 结尾的区间以now为终点
func durationMonths(duration string, now time.Time) int {
	dates := monthYear.FindAllString(duration, -1)
	if len(dates) == 0 {
		return 0
	}

	start, ok := parseMonthYear(dates[0])
	if !ok {
		return 0
	}

	var end time.Time
	lower := strings.ToLower(duration)
	switch {
	case strings.Contains(lower, "present") || strings.Contains(lower, "current"):
		end = now
	case len(dates) >= 2:
		var endOK bool
		end, endOK = parseMonthYear(dates[1])
		if !endOK {
			return 0
		}
	default:
		return 0
	}

	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

// parseMonthYear 解析"January 2020"或"Jan 2020"形式的月份
func parseMonthYear(s string) (time.Time, bool) {
	for _, layout := range []string{"January 2006", "Jan 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// validateName 校验模型给出的人名候选：2-4个词、全部首字母大写、不含机构词
func validateName(candidate string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return ""
	}

	words := strings.Fields(candidate)
	if len(words) < 2 || len(words) > 4 {
		return ""
	}
	for _, w := range words {
		r := rune(w[0])
		if !(r >= 'A' && r <= 'Z') {
			return ""
		}
	}

	lower := strings.ToLower(candidate)
	for _, skip := range nameFalsePositives {
		if strings.Contains(lower, skip) {
			return ""
		}
	}
	return candidate
}

// dedupeHead 去重并截断到前n项，保持首次出现顺序
func dedupeHead(items []string, n int) []string {
	seen := make(map[string]struct{}, len(items))
	out := []string{}
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
		if len(out) >= n {
			break
		}
	}
	return out
}

// extractJSON 从模型响应中提取JSON文本
// 优先匹配```json代码块，退化为定位首个大括号平衡区间
func extractJSON(text string) string {
	matches := jsonFence.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(text[start : i+1])
			}
		}
	}
	return ""
}
