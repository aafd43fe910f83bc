/*
Package config manages configuration loading and validation for replacerc.

	            +-------------+
	            |   Config    |
	            | (defaults)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Holds the compiled-in defaults (roots, extensions, skip tokens, rules)
- Loads optional overrides from a config file
- Validates every rule compiles before a run touches the disk

🔄 Flow:
1. Pick a parser by file suffix (a bare .replacerc tries YAML, then HCL)
2. Parse into Config
3. Fill unset fields from Default()
4. Validate

🔍 Example:

	cfg, err := config.Load(ctx, "replacerc.yaml")
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
*/
package config
