package browser

// Resolves after two animation frames so transitions started by a click are registered
const animationFramesJS = `() => new Promise(resolve => requestAnimationFrame(() => requestAnimationFrame(resolve)))`

// True once every finite animation and CSS transition has stopped running.
// Infinite animations (spinners, pulsing badges) never finish and are ignored.
const animationsIdleJS = `() => {
	if (typeof document.getAnimations !== 'function') {
		return true;
	}
	return document.getAnimations().every(a => {
		if (a.playState !== 'running') {
			return true;
		}
		const timing = a.effect ? a.effect.getComputedTiming() : null;
		return timing !== null && timing.iterations === Infinity;
	});
}`

// Visible text of the page, used to describe what was on screen when a wait failed
const visibleTextJS = `() => {
	if (!document.body) {
		return '';
	}
	const walker = document.createTreeWalker(
		document.body,
		NodeFilter.SHOW_TEXT,
		{
			acceptNode: function(node) {
				const parent = node.parentElement;
				if (!parent) return NodeFilter.FILTER_REJECT;
				const style = window.getComputedStyle(parent);
				if (style.display === 'none' || style.visibility === 'hidden') {
					return NodeFilter.FILTER_REJECT;
				}
				return NodeFilter.FILTER_ACCEPT;
			}
		}
	);

	const texts = [];
	let node;
	while (node = walker.nextNode()) {
		const text = node.textContent.trim();
		if (text.length > 0) {
			texts.push(text);
		}
	}

	return texts.join(' ').substring(0, 3000);
}`

// maxPageTextInError bounds how much page text a wait error carries
const maxPageTextInError = 300

// truncateString - truncates string to maximum length
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
