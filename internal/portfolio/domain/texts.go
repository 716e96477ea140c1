package domain

// SiteTexts maps named copy slots (hero text, button labels, contact info)
// to their values.
type SiteTexts map[string]string

var defaultSiteTexts = SiteTexts{
	"homeDescription": "세상을 프레임 속에 담아내는 영상 제작자입니다.\n감각적인 연출과 섬세한 편집으로 당신의 이야기를 시각화합니다.",
	"homeButtonText":  "Explore Portfolio",

	"aboutTitle":       "I AM A STORYTELLER.",
	"aboutQuote":       "카메라는 도구일 뿐, 감동을 만드는 것은 그 프레임 안에 담긴 진심입니다.",
	"aboutDescription": "단순히 기록하는 것을 넘어, 매 순간의 감정과 분위기를 가장 완벽한 톤으로 담아내고자 합니다.\n다양한 댄스 필름과 뮤직비디오 프로젝트를 거치며 시각적 리듬감과 역동적인 연출력을 쌓아왔습니다.",

	"aboutValue1Title": "Clear Communication",
	"aboutValue1Desc":  "아이디어가 현실이 되는 과정에서 가장 중요한 것은 상호 이해입니다.",
	"aboutValue2Title": "On-time Delivery",
	"aboutValue2Desc":  "약속된 시간을 철저히 지켜 프로젝트의 완성을 보장합니다.",
	"aboutValue3Title": "Extreme Detail",
	"aboutValue3Desc":  "프레임 한 장, 색감 한 스탑의 차이가 영상의 본질을 결정합니다.",
	"aboutValue4Title": "Flexible Solution",
	"aboutValue4Desc":  "현장의 변수 속에서도 최선의 결과를 위한 대안을 신속하게 찾습니다.",

	"contactSubText":      "함께 새로운 프로젝트를 시작해볼까요?",
	"contactEmail":        "contact@example.com",
	"contactInstagram":    "https://www.instagram.com/",
	"contactYoutube":      "https://www.youtube.com/",
	"contactLocation":     "Seoul, South Korea",
	"contactAvailability": "Available for worldwide projects",
	"contactFormUrl":      "",
	"contactCalendarUrl":  "",

	"footerCopyright": "© Twoong Studio",
}

// DefaultSiteTexts returns a copy of the compiled-in copy record.
func DefaultSiteTexts() SiteTexts {
	return defaultSiteTexts.Clone()
}

func (t SiteTexts) Clone() SiteTexts {
	out := make(SiteTexts, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Merge returns base overlaid with overrides. An empty value clears the
// slot; empty keys are ignored and keys unknown to base are kept.
func Merge(base SiteTexts, overrides map[string]string) SiteTexts {
	out := base.Clone()
	for k, v := range overrides {
		if k == "" {
			continue
		}
		out[k] = v
	}
	return out
}
