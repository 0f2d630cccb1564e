package weather

// Icon identifies the static image shown for a condition code
type Icon string

const (
	IconNone         Icon = ""
	IconThunderstorm Icon = "thunderstorm"
	IconDrizzle      Icon = "drizzle"
	IconRain         Icon = "rain"
	IconSnow         Icon = "snow"
	IconMist         Icon = "mist"
	IconExtremeSmoke Icon = "extreme-smoke"
	IconWind         Icon = "wind"
	IconTornado      Icon = "tornado"
	IconClearDay     Icon = "clear-day"
	IconCloudy       Icon = "cloudy"
)

// iconFiles maps icons to asset file names under the icon directory
var iconFiles = map[Icon]string{
	IconThunderstorm: "thunderstorms-day-overcast-rain.svg",
	IconDrizzle:      "drizzle.svg",
	IconRain:         "rain.svg",
	IconSnow:         "snow.svg",
	IconMist:         "mist.svg",
	IconExtremeSmoke: "extreme-smoke.svg",
	IconWind:         "wind.svg",
	IconTornado:      "tornado.svg",
	IconClearDay:     "clear-day.svg",
	IconCloudy:       "cloudy.svg",
}

// File returns the asset file name for the icon, or "" for IconNone
func (i Icon) File() string {
	return iconFiles[i]
}

type iconRule struct {
	from, to int
	icon     Icon
}

func (r iconRule) matches(code int) bool {
	return code >= r.from && code <= r.to
}

// iconRules is evaluated in order and the first match wins. The single
// atmosphere codes sit ahead of the 701-781 range they fall inside.
var iconRules = []iconRule{
	{200, 232, IconThunderstorm},
	{300, 321, IconDrizzle},
	{500, 531, IconRain},
	{600, 622, IconSnow},
	{762, 762, IconExtremeSmoke},
	{771, 771, IconWind},
	{781, 781, IconTornado},
	{701, 781, IconMist},
	{800, 800, IconClearDay},
	{801, 804, IconCloudy},
}

// SelectIcon maps a condition code to its icon. ok is false when no rule matches.
func SelectIcon(code int) (icon Icon, ok bool) {
	for _, rule := range iconRules {
		if rule.matches(code) {
			return rule.icon, true
		}
	}
	return IconNone, false
}
