package reward

// #region default-table
// defaultTable holds the per-style reward vectors recovered offline by inverse
// reinforcement learning from annotated coaching sessions. Styles 1..6 index
// sport slots, styles 7..12 index physio slots.
var defaultTable = Table{
	1: {
		-2.9226, 1.6654, -0.8977, -1.2029, 0.2015, 1.0874, -0.7712, 0.2315,
		-0.5087, -1.4932, 0.0865, -0.1459, -0.4758, 0.8698, 0.2096, 1.3890,
		-1.0427, -0.8361, -0.7810, 0.5317, -0.2473, -0.5183, -1.4109, 0.4672,
		-0.1875, 0.3087, 0.3542, -1.7459, 0.3393, -0.9153, 0.1983, 1.5616,
		-1.0507, -0.1455, 0.0602, -0.9611, -1.6042, -1.4829, 1.1322, -0.6712,
		-0.7678, 0.1423, 0.0176, -0.5194, -0.4657,
	},
	2: {
		-3.1159, 0.1070, 0.1660, -0.2260, 0.4185, 1.0119, 1.0636, 0.1678,
		-1.7849, 0.4758, 0.0427, 0.7770, 0.7004, 0.3691, 0.1297, 1.0289,
		0.8062, -0.4222, 1.3797, -0.6728, -0.2450, -0.7160, -0.9990, -2.4285,
		0.2252, -0.0932, -1.3157, 0.8116, 0.2296, -0.1611, -0.5794, 0.4525,
		1.1679, 0.4240, -0.7263, 0.2725, -0.1282, 0.0699, 0.4927, 0.7484,
		0.6566, -0.8213, 0.1206, -0.5688, -0.0583,
	},
	3: {
		-1.4117, 0.3433, -0.3429, 0.7437, 0.5857, 1.0038, 0.9591, 0.4365,
		0.7512, 0.6385, 0.7859, 0.0136, 0.5834, 0.7985, 0.5913, 0.4757,
		0.8504, -0.3412, 0.1006, 0.6611, 0.6541, 0.4476, 0.4910, 0.4323,
		0.5008, 0.1208, 0.7798, 0.4419, 0.4315, 0.2303, 0.8609, 0.6229,
		0.6833, 1.0950, 0.7809, 0.5305, 1.3171, 0.4035, 0.6420, 0.8738,
		0.4265, 0.6839, 0.4783, 0.4274, 0.3891,
	},
	4: {
		-2.7637, -0.0411, -0.2511, -1.7135, 0.2790, -0.5444, 0.3508, -0.0749,
		-0.2666, -0.6779, -0.4108, -0.5644, -0.0739, 0.5348, 0.3980, -0.8533,
		-0.6652, 0.4490, -0.2257, -0.1040, 0.7707, -0.8082, -1.6454, 0.4878,
		-0.4187, 0.1656, -0.0459, 0.3677, -1.5297, -1.2704, -1.7674, -1.1694,
		0.7162, -0.5042, -1.8385, -0.1054, -0.1646, 0.1970, -0.7864, -0.7396,
		-0.9845, -0.4249, 0.1211, -0.3276, -0.1033,
	},
	5: {
		-3.0632, 0.1599, -0.7689, -0.9563, -0.6195, -0.6955, 0.3178, -0.3244,
		-0.7579, -2.0870, -1.6089, -1.4427, 0.2987, -0.4781, -0.8196, -0.7768,
		-0.5909, -0.3901, -1.6063, -0.3111, -0.6445, -0.2032, 1.7511, 0.6727,
		-0.4250, -0.6980, -0.2542, 0.2135, 0.2004, -0.4547, -0.3212, -0.3930,
		-0.3917, -0.4012, -0.5046, 0.1342, -0.6493, -1.5849, -0.5382, -0.3317,
		0.0738, -0.7867, 0.0870, -1.9799, -0.5280,
	},
	6: {
		-2.9299, 1.2220, -0.7155, 0.2413, 0.1560, -0.7515, -0.0374, -0.5922,
		1.1707, 2.3306, 0.9092, -0.8995, 0.7769, 1.0881, 0.7228, -0.1113,
		2.0403, -0.1630, 0.1808, -1.7696, 2.1196, 0.7768, 0.2820, -0.1160,
		0.7139, 1.6772, 1.1701, 0.1981, -0.2155, 1.4542, 1.3987, 0.2515,
		-0.3151, -0.5418, 0.8066, 1.0215, -1.2116, -1.4156, -0.8486, 0.6482,
		-0.2747, 0.7324, 1.0305, 0.4507, 0.5571,
	},
	7: {
		-2.1998, 0.3892, -1.0137, 0.2511, 0.9436, 0.4913, -0.0904, -0.0054,
		-0.1251, -0.1010, -0.5746, -0.1282, 0.0694, -0.4832, -0.7410, -0.1257,
		-0.6439, -0.4939, 0.3939, -0.4736, 0.2839, -0.8773, -0.9739, -0.4789,
		0.2683, -1.4286, 0.0382, -1.1502, -0.1904, -0.0687, 0.0078, 0.1112,
		0.1366, -0.0294, -0.5460, -0.5580, -0.1810, -0.4357, -0.5080, -0.4787,
		1.0447, -1.0206, 0.2698, -0.7465, 0.5058, -0.7294, -1.5142, -0.5568,
		-1.2496, 0.3558, -0.2855, 0.6525, -0.4952,
	},
	8: {
		-1.7551, 0.8042, 0.6692, 0.3518, -0.0322, 0.9552, -0.0969, -0.9621,
		-0.0778, 0.0767, -0.1881, 0.8850, 0.5570, 2.2414, 0.7527, 0.1208,
		0.2599, -0.2839, 0.8419, 0.7320, 0.0681, 0.1401, 0.4793, 1.0844,
		-0.3423, 0.2839, 0.9998, 0.9151, 0.0044, -0.2309, -0.3373, 0.6521,
		0.2292, 1.3079, 0.9555, 0.3008, 0.7101, -0.5511, 0.9117, 0.1782,
		0.7082, 0.8017, 0.4330, 0.7207, -0.5328, 1.5982, -0.0808, -0.7037,
		-0.8531, 0.2716, 0.2989, -0.0158, -0.5023,
	},
	9: {
		-2.5731, -1.4553, 1.3001, -0.1580, -0.4609, 1.8045, -0.0596, -0.3993,
		-0.7517, 1.4578, -0.3213, 1.3185, 2.9934, 0.9005, -0.4164, 0.1494,
		-0.7638, 0.2461, -0.4475, 0.6717, 1.3898, 0.6660, 1.8877, -0.7039,
		0.3538, 0.0008, 1.8256, 2.1660, 1.6604, -0.4136, -1.9783, 1.6235,
		-0.7561, -0.3541, 0.4085, 1.5193, 2.3095, 0.9064, 0.4921, 1.6827,
		2.1370, -0.1477, 0.4475, -0.2827, -0.6475, 0.0536, -0.9012, 1.6216,
		0.2848, 0.2088, 1.0565, -0.0707, -0.4836,
	},
	10: {
		-1.9482, -0.2093, 0.0240, -0.3504, 0.6822, -0.2225, -0.2453, -0.3390,
		0.2608, -0.1902, 0.0415, -0.2083, -0.9163, -0.5799, 0.3282, 0.1294,
		0.2994, 0.2984, -0.3172, -0.2178, 0.0620, 0.2871, -0.1809, 0.1113,
		-0.1549, -0.8553, -0.3983, -0.4948, 0.2685, -0.3077, -0.5573, -1.3632,
		-1.1027, 0.9614, -0.0264, -0.0229, -0.2504, 0.3061, -0.2203, -0.3720,
		0.0076, 0.1332, -0.1339, -0.3530, 0.3784, 0.1960, 0.0072, 0.1031,
		0.2447, 0.5211, -0.3112, 0.6191, -0.3491,
	},
	11: {
		-3.4303, -0.1666, -1.1317, -0.1378, 1.8909, 0.8038, -0.2485, -1.4636,
		-0.0669, -1.3776, -0.5864, -1.0000, -0.3972, 1.1794, 1.6797, 1.3266,
		0.4091, 1.2686, -0.9677, -0.0853, -2.3765, 0.6929, -0.4059, 0.1357,
		0.0507, -0.9913, -0.8835, -0.4233, -1.1214, 2.7644, -1.3451, -0.5524,
		-0.3813, -1.0211, -1.9796, 0.7399, 0.5260, -0.1195, -1.4079, 1.3738,
		-2.0652, 1.1120, -0.2017, -1.3275, -0.7225, -0.3746, 0.0589, 1.4650,
		-0.6626, -0.6505, 0.8499, 0.1173, -0.6541,
	},
	12: {
		-2.3183, -0.0459, 0.4192, 1.1648, -1.1873, 0.9453, 0.2139, 1.3840,
		0.7027, 0.6588, 0.5777, -0.0774, 0.3030, 0.9773, 0.8766, 0.5391,
		1.0934, 1.1878, 0.0835, 0.5768, 1.5470, 0.0188, 0.5986, 1.8114,
		0.7504, -0.2676, 0.7608, 0.6473, 0.5909, 0.8806, 0.8390, 0.1947,
		1.6229, -0.2521, 1.4520, 0.9576, -1.1900, -0.0656, 1.1048, 0.3660,
		0.8023, -0.3564, 0.1088, -0.8836, 1.3444, 0.9881, -0.2098, -0.4516,
		1.6695, 0.7432, 0.7743, 0.0506, 0.3946,
	},
}

// DefaultTable returns a copy of the shipped reward vectors.
func DefaultTable() Table {
	t := make(Table, len(defaultTable))
	for s, v := range defaultTable {
		t[s] = append([]float64(nil), v...)
	}
	return t
}

// #endregion default-table
