package plan

import "pickwise/internal/model"

// fallbackIntervals is the documented default when no table entry
// matches the top-level classification: a generic three-band split.
var fallbackIntervals = []model.PriceInterval{
	{Name: "经济型", Min: 10, Max: 50, Description: "预算有限时的入门选择"},
	{Name: "中端型", Min: 50, Max: 200, Description: "性价比与品质的平衡点"},
	{Name: "高端型", Min: 200, Max: 1000, Description: "追求品质的高端选择"},
}

// fallbackDimensions is the generic value/quality/reputation trio.
var fallbackDimensions = []model.EvaluationDimension{
	{Name: "性价比最高", Description: "同价位中综合表现最好的产品"},
	{Name: "质量最佳", Description: "用料和做工最可靠的产品"},
	{Name: "口碑最好", Description: "用户评价和复购率最高的产品"},
}

func defaultIntervalTable() map[string][]model.PriceInterval {
	return map[string][]model.PriceInterval{
		"个护健康": {
			{Name: "经济型", Min: 5, Max: 30, Description: "日常消耗品价位"},
			{Name: "中端型", Min: 30, Max: 100, Description: "品牌常规款价位"},
			{Name: "高端型", Min: 100, Max: 500, Description: "进口或专业线价位"},
		},
		"数码电子": {
			{Name: "入门级", Min: 50, Max: 300, Description: "满足基本功能的入门价位"},
			{Name: "主流级", Min: 300, Max: 1500, Description: "主流配置价位"},
			{Name: "旗舰级", Min: 1500, Max: 10000, Description: "旗舰配置价位"},
		},
		"家用电器": {
			{Name: "经济型", Min: 100, Max: 500, Description: "基础功能机型"},
			{Name: "中端型", Min: 500, Max: 2000, Description: "主流功能机型"},
			{Name: "高端型", Min: 2000, Max: 10000, Description: "全功能旗舰机型"},
		},
		"厨房用品": {
			{Name: "经济型", Min: 10, Max: 80, Description: "基础耐用款"},
			{Name: "中端型", Min: 80, Max: 300, Description: "品牌主力款"},
			{Name: "高端型", Min: 300, Max: 2000, Description: "专业或进口款"},
		},
		"美妆护肤": {
			{Name: "开架型", Min: 20, Max: 100, Description: "开架品牌价位"},
			{Name: "专柜型", Min: 100, Max: 400, Description: "专柜品牌价位"},
			{Name: "贵妇型", Min: 400, Max: 3000, Description: "高端线价位"},
		},
		"母婴用品": {
			{Name: "经济型", Min: 20, Max: 100, Description: "日常用量的实惠选择"},
			{Name: "中端型", Min: 100, Max: 400, Description: "主流品牌价位"},
			{Name: "高端型", Min: 400, Max: 2000, Description: "进口高端价位"},
		},
		"运动户外": {
			{Name: "入门级", Min: 50, Max: 200, Description: "入门装备价位"},
			{Name: "进阶级", Min: 200, Max: 800, Description: "进阶装备价位"},
			{Name: "专业级", Min: 800, Max: 5000, Description: "专业装备价位"},
		},
		"食品饮料": {
			{Name: "日常型", Min: 5, Max: 40, Description: "日常消费价位"},
			{Name: "品质型", Min: 40, Max: 150, Description: "品质优选价位"},
			{Name: "礼盒型", Min: 150, Max: 1000, Description: "送礼或收藏价位"},
		},
	}
}

func defaultDimensionTable() map[string][]model.EvaluationDimension {
	return map[string][]model.EvaluationDimension{
		"个护健康": {
			{Name: "性价比最高", Description: "同价位中用料和效果最好"},
			{Name: "温和低敏", Description: "对敏感人群最友好"},
			{Name: "口碑最好", Description: "长期用户评价最高"},
		},
		"数码电子": {
			{Name: "性价比最高", Description: "同价位配置最强"},
			{Name: "性能最强", Description: "绝对性能表现最好"},
			{Name: "最耐用", Description: "故障率最低、寿命最长"},
		},
		"家用电器": {
			{Name: "性价比最高", Description: "同价位功能最全"},
			{Name: "最省电", Description: "能耗表现最好"},
			{Name: "最静音", Description: "运行噪音最低"},
		},
		"厨房用品": {
			{Name: "性价比最高", Description: "同价位中最实用"},
			{Name: "最耐用", Description: "经久耐用不易损坏"},
			{Name: "最易清洁", Description: "清洗保养最省心"},
		},
		"美妆护肤": {
			{Name: "性价比最高", Description: "同价位效果最好"},
			{Name: "成分最佳", Description: "配方成分最讲究"},
			{Name: "口碑最好", Description: "回购率最高"},
		},
		"母婴用品": {
			{Name: "安全性最高", Description: "材质和工艺最让人放心"},
			{Name: "性价比最高", Description: "同价位中最实惠耐用"},
			{Name: "口碑最好", Description: "父母群体评价最高"},
		},
		"运动户外": {
			{Name: "性价比最高", Description: "同价位中性能最均衡"},
			{Name: "最轻便", Description: "重量和便携性最好"},
			{Name: "最耐用", Description: "经受高强度使用"},
		},
		"食品饮料": {
			{Name: "性价比最高", Description: "同价位中分量与品质最好"},
			{Name: "口味最佳", Description: "大众口味评价最高"},
			{Name: "配料最干净", Description: "配料表最简单健康"},
		},
	}
}
