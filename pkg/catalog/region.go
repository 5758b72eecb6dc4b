package catalog

// RegionCode identifies a geographic region a course is held in.
type RegionCode string

const (
	RegionTaipei        RegionCode = "TPE"
	RegionNewTaipei     RegionCode = "NWT"
	RegionKeelung       RegionCode = "KEE"
	RegionTaoyuan       RegionCode = "TAO"
	RegionHsinchuCity   RegionCode = "HSZ"
	RegionHsinchuCounty RegionCode = "HSQ"
	RegionMiaoli        RegionCode = "MIA"
	RegionTaichung      RegionCode = "TXG"
	RegionChanghua      RegionCode = "CHA"
	RegionNantou        RegionCode = "NAN"
	RegionYunlin        RegionCode = "YUN"
	RegionChiayiCity    RegionCode = "CYI"
	RegionChiayiCounty  RegionCode = "CYQ"
	RegionTainan        RegionCode = "TNN"
	RegionKaohsiung     RegionCode = "KHH"
	RegionPingtung      RegionCode = "PIF"
	RegionYilan         RegionCode = "ILA"
	RegionHualien       RegionCode = "HUA"
	RegionTaitung       RegionCode = "TTT"
	RegionPenghu        RegionCode = "PEN"
	RegionKinmen        RegionCode = "KIN"
	RegionLienchiang    RegionCode = "LIE"
)

// Region is a region code with its display name.
type Region struct {
	Code RegionCode `json:"code"`
	Name string     `json:"name"`
}

// regions is ordered north to south, then outlying islands.
var regions = []Region{
	{RegionTaipei, "Taipei City"},
	{RegionNewTaipei, "New Taipei City"},
	{RegionKeelung, "Keelung City"},
	{RegionTaoyuan, "Taoyuan City"},
	{RegionHsinchuCity, "Hsinchu City"},
	{RegionHsinchuCounty, "Hsinchu County"},
	{RegionMiaoli, "Miaoli County"},
	{RegionTaichung, "Taichung City"},
	{RegionChanghua, "Changhua County"},
	{RegionNantou, "Nantou County"},
	{RegionYunlin, "Yunlin County"},
	{RegionChiayiCity, "Chiayi City"},
	{RegionChiayiCounty, "Chiayi County"},
	{RegionTainan, "Tainan City"},
	{RegionKaohsiung, "Kaohsiung City"},
	{RegionPingtung, "Pingtung County"},
	{RegionYilan, "Yilan County"},
	{RegionHualien, "Hualien County"},
	{RegionTaitung, "Taitung County"},
	{RegionPenghu, "Penghu County"},
	{RegionKinmen, "Kinmen County"},
	{RegionLienchiang, "Lienchiang County"},
}

var regionNames = func() map[RegionCode]string {
	m := make(map[RegionCode]string, len(regions))
	for _, r := range regions {
		m[r.Code] = r.Name
	}
	return m
}()

// Regions returns all known regions in display order.
func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// Valid reports whether c is a known region code.
func (c RegionCode) Valid() bool {
	_, ok := regionNames[c]
	return ok
}

// Name returns the display name, or the raw code if unknown.
func (c RegionCode) Name() string {
	if name, ok := regionNames[c]; ok {
		return name
	}
	return string(c)
}
