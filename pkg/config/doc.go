/*
Package config manages configuration parsing and validation for smbprecheck.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Locates the control workbook and the session log directory
- Holds the task layout: sheet name, keyword, substitution range, search columns

🔄 Flow:
1. An explicit --config path, else the first .smbprecheck.* file, else defaults
2. Format picked by extension
3. .env values and then the process environment override control and log_dir
4. Validate fills defaults and checks cell references and patterns

🔍 Example:

	control: data/control.xlsx
	log_dir: vba/log
	patterns: ["*.xlsx", "*.xlsm"]
	task_sheet: Test Case
	substitute_range: A5:M700
	search_columns: C:F
*/
package config
