package fabrication

// DefaultTable returns the built-in placeholder-pattern and brand
// denylist rules. Deployments can override it with a YAML file; the
// version string travels into audit reports so reruns are comparable.
func DefaultTable() Table {
	return Table{
		Version: "2024.2",
		Patterns: []Pattern{
			{
				// 知名品牌A, 国际品牌B, 品牌C
				Name:  "generic-brand-letter",
				Regex: `^(知名|著名|国际|进口|国产|优质|高端)?品牌[A-Z]$`,
			},
			{
				// 经济款B, 高端款C, 旗舰款D
				Name:  "generic-model-letter",
				Regex: `^(经济|实惠|高端|豪华|专业|旗舰|入门|畅销|热销|经典|标准|基础|升级)款[A-Z]$`,
			},
			{
				// 产品A, 型号B, 商品1
				Name:  "generic-product-letter",
				Regex: `^(产品|型号|商品)[A-Z0-9]$`,
			},
			{
				// 某品牌, 某某牌
				Name:  "mou-brand",
				Regex: `^某+(品牌|牌子|牌|厂家)`,
			},
			{
				// XX牌, xx品牌
				Name:  "xx-brand",
				Regex: `^[Xx]{2,}(品牌|牌)?$`,
			},
		},
		Denylist: []BrandRule{
			{Brand: "Apple", Keywords: []string{"棉签", "卫生纸", "洗衣液", "酱油", "剃须刀"}},
			{Brand: "Rolex", Keywords: []string{"垃圾袋", "拖把", "洗洁精", "纸巾"}},
			{Brand: "Nike", Keywords: []string{"电饭煲", "奶粉", "洗发水", "插座"}},
			{Brand: "Gillette", Keywords: []string{"奶粉", "电视机", "酱油"}},
			{Brand: "Dyson", Keywords: []string{"酱油", "奶粉", "棉签", "牙膏"}},
			{Brand: "Louis Vuitton", Keywords: []string{"拖把", "垃圾袋", "电池"}},
			{Brand: "Intel", Keywords: []string{"洗发水", "奶粉", "棉签", "酱油"}},
			{Brand: "华为", Keywords: []string{"棉签", "奶粉", "酱油", "卫生纸"}},
			{Brand: "茅台", Keywords: []string{"剃须刀", "电视机", "尿不湿"}},
		},
	}
}
