package render

import (
	"bytes"
	"strings"
	"testing"

	"air-trip-planner/internal/synth"
	"air-trip-planner/internal/trip"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItinerary() trip.Itinerary {
	return trip.Itinerary{
		Title:              "서울 맛집 투어",
		RealityScore:       4.5,
		RealityReason:      "예산이 넉넉합니다.",
		TotalEstimatedCost: "약 45만원",
		PlannerComment:     "지하철 위주로 이동하세요.",
		DailyPlans: []trip.DayPlan{
			{Day: 2, Theme: "둘째 날", Activities: []trip.Activity{
				{Time: "오전", Place: "북촌", Description: "산책", Icon: "🚶", Cost: "0"},
			}},
			{Day: 1, Theme: "첫째 날", Activities: []trip.Activity{
				{Time: "오후", Place: "광장시장", Icon: "🍜", Cost: "15,000원"},
				{Time: "저녁", Place: "남산타워", Icon: "✨", Cost: ""},
			}},
		},
	}
}

func parse(t *testing.T, v View) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, v.HTML(&buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestClassifyScore(t *testing.T) {
	assert.Equal(t, TierHigh, ClassifyScore(4.5))
	assert.Equal(t, TierHigh, ClassifyScore(4))
	assert.Equal(t, TierMid, ClassifyScore(3))
	assert.Equal(t, TierMid, ClassifyScore(2.5))
	assert.Equal(t, TierLow, ClassifyScore(2))
	assert.Equal(t, TierLow, ClassifyScore(0))
}

func TestReasonTone(t *testing.T) {
	assert.Equal(t, ToneWarning, ReasonTone(2.9))
	assert.Equal(t, ToneAffirmative, ReasonTone(3))
}

func TestRender(t *testing.T) {
	v := Render(sampleItinerary())

	assert.Equal(t, "서울 맛집 투어", v.Title)
	assert.Equal(t, TierHigh, v.Badge.Tier)
	assert.Equal(t, "현실성 점수: 4.5 / 5.0", v.Badge.Label)
	assert.Equal(t, ToneAffirmative, v.ReasonTone)

	require.Len(t, v.Days, 2)
	assert.Equal(t, "Day 2: 둘째 날", v.Days[0].Heading, "days keep input order")
	assert.Equal(t, "Day 1: 첫째 날", v.Days[1].Heading)

	assert.Equal(t, "0원", v.Days[0].Activities[0].Cost)
	assert.Equal(t, "15,000원", v.Days[1].Activities[0].Cost, "suffix is not doubled")
	assert.Equal(t, "", v.Days[1].Activities[1].Cost)
}

func TestRender_DoesNotMutateInput(t *testing.T) {
	it := sampleItinerary()
	before := sampleItinerary()

	_ = Render(it)
	assert.Equal(t, before, it)
}

func TestRender_EmptyStructures(t *testing.T) {
	it := trip.Itinerary{Title: "오류 발생", RealityScore: 0, TotalEstimatedCost: "0원"}
	v := Render(it)
	assert.Empty(t, v.Days)

	doc := parse(t, v)
	assert.Equal(t, "오류 발생", doc.Find(".trip-title").Text())
	assert.Equal(t, 1, doc.Find(".planner-comment").Length())
	assert.Equal(t, 1, doc.Find(".timeline").Length())
	assert.Equal(t, 0, doc.Find(".day-block").Length())

	it.DailyPlans = []trip.DayPlan{{Day: 1, Theme: "빈 날"}}
	doc = parse(t, Render(it))
	assert.Equal(t, 1, doc.Find(".day-block").Length())
	assert.Equal(t, 0, doc.Find(".activity-card").Length())
}

func TestHTML_BadgeTiers(t *testing.T) {
	cases := map[float64]string{4.5: "score-high", 2: "score-low", 3: "score-mid"}
	for score, class := range cases {
		it := sampleItinerary()
		it.RealityScore = score

		doc := parse(t, Render(it))
		badge := doc.Find(".reality-badge")
		assert.True(t, badge.HasClass(class), "score %v should carry %s", score, class)
	}
}

func TestHTML_Content(t *testing.T) {
	it := sampleItinerary()
	it.RealityScore = 2
	doc := parse(t, Render(it))

	assert.True(t, doc.Find(".reason").HasClass("reason-warning"))
	assert.Contains(t, doc.Find(".total-cost").Text(), "약 45만원")
	assert.Equal(t, 3, doc.Find(".activity-card").Length())
	assert.Equal(t, "북촌", doc.Find(".act-name").First().Text())
}

func TestHTML_EscapesRemoteText(t *testing.T) {
	it := sampleItinerary()
	it.Title = `<script>alert("x")</script>`

	var buf bytes.Buffer
	require.NoError(t, Render(it).HTML(&buf))
	assert.NotContains(t, buf.String(), "<script>")
}

func TestRender_Idempotent(t *testing.T) {
	it := synth.Synthesize("Seoul", 3, 50000, []string{"버스"})

	first, err := Render(it).HTMLString()
	require.NoError(t, err)
	second, err := Render(it).HTMLString()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, Markdown(Render(it)), Markdown(Render(it)))
}

func TestMarkdown(t *testing.T) {
	out := Markdown(Render(sampleItinerary()))

	assert.True(t, strings.HasPrefix(out, "🗺 *서울 맛집 투어*"))
	assert.Contains(t, out, "🟢 현실성 점수: 4.5 / 5.0")
	assert.Contains(t, out, "✅ _판단 근거: 예산이 넉넉합니다._")
	assert.Contains(t, out, "📅 *Day 2: 둘째 날*")
	assert.Contains(t, out, "🍜 오후 · *광장시장* (15,000원)")

	it := sampleItinerary()
	it.Title = "snake_case *bold*"
	it.RealityScore = 1
	out = Markdown(Render(it))
	assert.Contains(t, out, `snake\_case \*bold\*`)
	assert.Contains(t, out, "⚠️ _판단 근거")
}
